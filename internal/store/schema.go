package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const schemaCacheTTL = 5 * time.Minute

// FallbackSchema describes the attendee table when introspection is
// unavailable; the synthesizer still needs a schema block to work against.
const FallbackSchema = `TABLE attendees
  id integer
  full_name text
  company_name text
  job_title text
  country text
  attendee_type text
  registration_status text
  registration_date date
  arrival_date date
  departure_date date
  hotel_name text`

// SchemaProvider builds the schema text block for the synthesis prompt from
// the live information_schema, with a TTL cache. Concurrent requests share a
// single introspection fetch via singleflight. Forbidden columns are omitted
// from the block entirely so the synthesizer never sees them.
type SchemaProvider struct {
	store     *Store
	table     string
	forbidden map[string]bool

	mu        sync.RWMutex
	cached    string
	expiresAt time.Time
	sf        singleflight.Group
}

func NewSchemaProvider(s *Store, table string, forbiddenColumns []string) *SchemaProvider {
	forbidden := make(map[string]bool, len(forbiddenColumns))
	for _, c := range forbiddenColumns {
		forbidden[strings.ToLower(c)] = true
	}
	return &SchemaProvider{store: s, table: table, forbidden: forbidden}
}

// SchemaBlock returns the cached schema text, introspecting on miss.
// Introspection failure soft-fails to the static fallback without caching it.
func (p *SchemaProvider) SchemaBlock(ctx context.Context) string {
	p.mu.RLock()
	if p.cached != "" && time.Now().Before(p.expiresAt) {
		block := p.cached
		p.mu.RUnlock()
		return block
	}
	p.mu.RUnlock()

	v, err, _ := p.sf.Do(p.table, func() (interface{}, error) {
		// Re-check under singleflight: another caller may have filled the
		// cache while we waited to enter.
		p.mu.RLock()
		if p.cached != "" && time.Now().Before(p.expiresAt) {
			block := p.cached
			p.mu.RUnlock()
			return block, nil
		}
		p.mu.RUnlock()

		block, err := p.introspect(ctx)
		if err != nil {
			log.Warn().Err(err).Str("table", p.table).Msg("schema introspection failed, using fallback")
			return FallbackSchema, nil
		}

		p.mu.Lock()
		p.cached = block
		p.expiresAt = time.Now().Add(schemaCacheTTL)
		p.mu.Unlock()
		return block, nil
	})
	if err != nil || v == nil {
		return FallbackSchema
	}
	return v.(string)
}

func (p *SchemaProvider) introspect(ctx context.Context) (string, error) {
	if p.store == nil {
		return "", fmt.Errorf("no data store configured")
	}
	rows, err := p.store.pool.Query(ctx,
		`SELECT column_name, data_type
		   FROM information_schema.columns
		  WHERE table_name = $1
		  ORDER BY ordinal_position`, p.table)
	if err != nil {
		return "", fmt.Errorf("introspect %s: %w", p.table, err)
	}
	defer rows.Close()

	var sb strings.Builder
	sb.WriteString("TABLE " + p.table + "\n")
	n := 0
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return "", err
		}
		if p.forbidden[strings.ToLower(name)] {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", name, dataType))
		n++
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if n == 0 {
		return "", fmt.Errorf("table %s has no visible columns", p.table)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
