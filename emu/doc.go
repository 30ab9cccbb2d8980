// Package emu provides a client for the Axiell EMu REST API.
//
// The API is multi-tenant: every URL is rooted at {base}[:{port}]/{tenant}.
// A session starts by posting credentials to the tokens resource; the bearer
// token comes back in the Authorization response header and must be passed
// to every later call.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := emu.NewClient(emu.Credentials{
//		BaseURL:  "https://emu.example.org",
//		Port:     "8080",
//		Tenant:   "museum",
//		Username: "api",
//		Password: "secret",
//	}, logger, emu.WithTimeout(10*time.Second))
//
//	ctx := context.Background()
//	token, err := client.Authenticate(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	record, err := client.GetRecord(ctx, token, "ecatalogue", "2", "data.irn", "data.SummaryData")
//
//	filter, _ := emu.FilterJSON(emu.And(emu.Exact("data.NamLast", "Smith")))
//	sort, _ := emu.SortJSON(emu.Asc("data.NamFirst"))
//	parties, err := client.Search(ctx, token, "eparties", emu.SearchSpec{
//		Filter: filter,
//		Sort:   sort,
//		Select: []string{"data.NamFirst", "data.NamLast"},
//		Limit:  10,
//	})
//
// # Error Handling
//
// Every failure is an *Error whose Kind matches one sentinel:
//
//   - ErrMissingConfiguration: a required credential is empty; nothing was sent
//   - ErrTransport: no HTTP response was received
//   - ErrUnexpectedStatus: the status code is not one the operation accepts
//   - ErrTokenNotFound: the token request succeeded without a bearer header
//   - ErrTokenNotSet: a token was required but none was available
//   - ErrUnauthorized, ErrNotFound: record retrieval got 401 or 404
//   - ErrDecode: a 200 response carried malformed JSON
//
// Callers branch with errors.Is:
//
//	if errors.Is(err, emu.ErrUnauthorized) {
//		// re-authenticate and retry
//	}
//
// Nothing is retried inside the package.
package emu
