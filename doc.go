// Package apikit provides a schema-validated API client: callers declare
// named services, endpoints and per-field validation schemas, then dispatch
// requests by "service.endpoint" name. Every outcome (validation failure,
// resolution miss, transport error or backend reply) is normalized into a
// single Response envelope.
//
// Key Features:
//
//   - Named validation rules with built-ins and caller-registered overrides
//   - Self-validating request models bound to ordered field schemas
//   - Header layering: endpoint over service over global
//   - Mock dispatch mode with per-endpoint configured responses
//   - Bearer-token authentication via pluggable token providers
//   - Declarative YAML service manifests
//
// Basic Usage:
//
//	client, err := apikit.New(apikit.Config{Host: "https://api.example.com"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	account := apikit.NewService("account", "/account")
//	_ = account.AddModel("login", apikit.NewFactory(apikit.Schema{
//		{Name: "email", Rules: []apikit.RuleRef{
//			{Rule: "required"},
//			{Rule: "email"},
//		}},
//		{Name: "password", Rules: []apikit.RuleRef{
//			{Rule: "required"},
//			{Rule: "minLength", Options: apikit.RuleOptions{Length: 8}},
//		}},
//	}, nil))
//	_ = account.AddEndpoint(apikit.EndpointConfig{
//		Name:  "login",
//		Path:  "/login",
//		Model: "login",
//	})
//	_ = client.AddService(account)
//
//	resp := client.Call(ctx, "account.login", apikit.RawData{
//		"email":    "user@example.com",
//		"password": "secret123",
//	})
//	if !resp.Success {
//		// resp.Message explains what failed
//	}
//
// Pre-validating Requests:
//
//	m, err := client.CreateRequest("account.login", data)
//	if err != nil {
//		// configuration or resolution problem
//	}
//	if m.IsValid() {
//		resp := client.Call(ctx, "account.login", m)
//		_ = resp
//	}
//
// Mock Mode:
//
// A client constructed with Config.Mock set never touches the network.
// Endpoints resolve their configured MockSuccess/MockFailure values; the
// failure branch is the default and apikit.WithMockSuccess() opts into the
// success branch.
package apikit
