package check

// Checker is implemented by all check types.
// Each check validates one external dependency of the RAG stack
// and returns a Result indicating success, failure or error.
//
// Implementations:
//   - envcheck.Check: validates environment variables
//   - importcheck.Check, importcheck.InterpreterCheck: Python environment
//   - supabasecheck.TokenCheck, supabasecheck.TableCheck: Supabase auth and PostgREST
//   - credcheck.Check: materializes a base64 service account file
//   - r2rcheck.*: smoke tests against an R2R deployment
//   - tcpcheck.Check, dbcheck.Check: Postgres connectivity
//   - embedcheck.Check: generates a single embedding
type Checker interface {
	Run() Result
}

// Func adapts a plain function to a Checker.
type Func func() Result

// Run calls f.
func (f Func) Run() Result {
	return f()
}
