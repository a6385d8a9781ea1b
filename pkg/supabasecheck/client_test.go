package supabasecheck

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vertti/ragcheck/pkg/check"
	"github.com/vertti/ragcheck/pkg/config"
)

func TestTableCheckRealConnector(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus check.Status
		wantRows   string
	}{
		{
			name:       "rows counted from content range",
			status:     http.StatusOK,
			body:       `[{"id":1}]`,
			wantStatus: check.StatusOK,
			wantRows:   "42",
		},
		{
			name:       "undefined table fails",
			status:     http.StatusNotFound,
			body:       `{"code":"42P01","details":null,"hint":null,"message":"relation \"public.document_chunks\" does not exist"}`,
			wantStatus: check.StatusFail,
		},
		{
			name:       "schema cache miss fails",
			status:     http.StatusNotFound,
			body:       `{"code":"PGRST205","details":null,"hint":null,"message":"Could not find the table 'public.document_chunks' in the schema cache"}`,
			wantStatus: check.StatusFail,
		},
		{
			name:       "undefined column errors",
			status:     http.StatusBadRequest,
			body:       `{"code":"42703","details":null,"hint":null,"message":"column document_chunks.id does not exist"}`,
			wantStatus: check.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath, gotPrefer string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod, gotPath, gotPrefer = r.Method, r.URL.Path, r.Header.Get("Prefer")
				w.Header().Set("Content-Type", "application/json")
				if tt.status == http.StatusOK {
					w.Header().Set("Content-Range", "0-0/42")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := TableCheck{
				Config: config.FromMap(map[string]string{
					"SUPABASE_URL":      server.URL,
					"SUPABASE_ANON_KEY": "anon-key",
				}),
				Connector: RealConnector{},
			}

			result := c.Run()

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (details: %v)", result.Status, tt.wantStatus, result.Details)
			}
			if tt.wantRows != "" && result.Metadata["rows"] != tt.wantRows {
				t.Errorf("rows = %q, want %q", result.Metadata["rows"], tt.wantRows)
			}
			if gotMethod != http.MethodGet {
				t.Errorf("method = %s, want GET", gotMethod)
			}
			if gotPath != "/rest/v1/document_chunks" {
				t.Errorf("path = %s, want /rest/v1/document_chunks", gotPath)
			}
			if gotPrefer != "count=exact" {
				t.Errorf("Prefer = %q, want count=exact", gotPrefer)
			}
		})
	}
}
