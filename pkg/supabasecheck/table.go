package supabasecheck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
)

// DefaultTable is the chunk table the RAG pipeline writes embeddings to.
const DefaultTable = "document_chunks"

// TableCheck counts the rows of a table through PostgREST.
type TableCheck struct {
	Config    *config.Config
	Connector Connector
}

// Run counts the rows in Table.
func (c *TableCheck) Run() check.Result {
	table := c.Config.GetDefault("SUPABASE_TABLE", DefaultTable)
	return check.Attempt("supabase: table "+table, func() (check.Metadata, error) {
		values, err := c.Config.Require("SUPABASE_URL", "SUPABASE_ANON_KEY")
		if err != nil {
			return nil, err
		}

		client, err := c.Connector.Connect(values[0], values[1])
		if err != nil {
			return nil, fmt.Errorf("create supabase client: %w", err)
		}

		count, err := client.Count(table)
		if err != nil {
			if isMissingRelation(err) {
				return nil, check.Absent("table "+table, err.Error())
			}
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		return check.Metadata{"rows": strconv.FormatInt(count, 10)}, nil
	})
}

// isMissingRelation recognises PostgREST's "undefined table" responses,
// which postgrest-go formats as "(CODE) message".
func isMissingRelation(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "(42P01)") || strings.HasPrefix(msg, "(PGRST205)")
}
