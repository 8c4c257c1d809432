// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package weaviate provides a managed Weaviate client used as a plain document store.

Classes are created with Vectorizer "none": objects carry no vectors and are only
ever read back through exact-match filters and sorts.
*/
package weaviate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	pingTimeout = 2 * time.Second

	// VectorizerNone disables vectorisation for a class.
	VectorizerNone = "none"

	// DataTypeText and DataTypeDate are Weaviate primitive property types.
	DataTypeText = "text"
	DataTypeDate = "date"

	// TokenizationField keeps the whole value as a single token so Equal
	// filters match exactly.
	TokenizationField = "field"
)

// NewClient parses the endpoint URL and returns a client that answered its
// readiness check.
//
// # Parameters
//   - ctx: Context for the readiness check.
//   - endpoint: Base URL such as http://localhost:8080.
//   - apiKey: Optional API key. Empty means anonymous access.
//   - logger: Structured logger for connection events.
func NewClient(ctx context.Context, endpoint, apiKey string, logger *slog.Logger) (*weaviate.Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("weaviate: invalid URL %q", endpoint)
	}

	cfg := weaviate.Config{
		Host:   parsed.Host,
		Scheme: parsed.Scheme,
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("weaviate: failed to create client: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		return nil, err
	}

	logger.Info("weaviate_client_connected", slog.String("host", parsed.Host))

	return client, nil
}

// Ping verifies that the Weaviate node reports itself ready.
func Ping(ctx context.Context, client *weaviate.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	ready, err := client.Misc().ReadyChecker().Do(pingCtx)
	if err != nil {
		return fmt.Errorf("weaviate: ping failed: %w", err)
	}
	if !ready {
		return errors.New("weaviate: node is not ready")
	}

	return nil
}

// EnsureClass creates the class when it does not exist yet.
// An existing class is left untouched.
func EnsureClass(ctx context.Context, client *weaviate.Client, class *models.Class, logger *slog.Logger) error {
	exists, err := client.Schema().ClassExistenceChecker().WithClassName(class.Class).Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate: check class %s: %w", class.Class, err)
	}
	if exists {
		return nil
	}

	if err := client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		// Another replica may have created it between the check and the create.
		if IsAlreadyExists(err) {
			return nil
		}
		return fmt.Errorf("weaviate: create class %s: %w", class.Class, err)
	}

	logger.Info("weaviate_class_created", slog.String("class", class.Class))

	return nil
}

// TextProperty returns an exact-match text property definition.
func TextProperty(name string) *models.Property {
	return &models.Property{
		Name:         name,
		DataType:     []string{DataTypeText},
		Tokenization: TokenizationField,
	}
}

// DateProperty returns a sortable date property definition.
func DateProperty(name string) *models.Property {
	return &models.Property{
		Name:     name,
		DataType: []string{DataTypeDate},
	}
}

// IsAlreadyExists reports whether a write was rejected because the object id
// or class name is already taken. Weaviate answers those with 422.
func IsAlreadyExists(err error) bool {
	var clientErr *fault.WeaviateClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	return clientErr.StatusCode == http.StatusUnprocessableEntity &&
		strings.Contains(strings.ToLower(clientErr.Msg), "already exists")
}

// DecodeGet unpacks the objects of one class from a GraphQL Get response into T.
// GraphQL level errors are returned as a single error.
func DecodeGet[T any](response *models.GraphQLResponse, className string) ([]T, error) {
	if response == nil {
		return nil, errors.New("weaviate: empty graphql response")
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, graphError := range response.Errors {
			if graphError != nil {
				messages = append(messages, graphError.Message)
			}
		}
		return nil, fmt.Errorf("weaviate: graphql: %s", strings.Join(messages, "; "))
	}

	raw, err := json.Marshal(response.Data["Get"])
	if err != nil {
		return nil, fmt.Errorf("weaviate: marshal graphql data: %w", err)
	}

	var byClass map[string][]T
	if err := json.Unmarshal(raw, &byClass); err != nil {
		return nil, fmt.Errorf("weaviate: decode graphql data: %w", err)
	}

	return byClass[className], nil
}

// Fields builds a flat GraphQL selection from property names.
func Fields(names ...string) []graphql.Field {
	fields := make([]graphql.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, graphql.Field{Name: name})
	}
	return fields
}

// AdditionalID selects the object id, decoded into [Additional].
func AdditionalID() graphql.Field {
	return graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "id"}}}
}

// Additional holds the metadata Weaviate returns under _additional.
type Additional struct {
	ID string `json:"id"`
}
