// Package jsonfile implements the brand repository on top of a single
// brands.json document kept fully in memory.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/darwin-elegiga/backend-theme/internal/domain"
	apperrors "github.com/darwin-elegiga/backend-theme/pkg/errors"
	"github.com/darwin-elegiga/backend-theme/pkg/validator"
)

// brandsSchema is the structural contract for brands.json. Struct-level
// constraints (weight ranges, enum styles) are enforced separately by the
// field validator after decoding.
const brandsSchema = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "object",
		"required": ["customerName", "colors"],
		"properties": {
			"customerName": {"type": "string", "minLength": 1},
			"colors": {
				"type": "object",
				"minProperties": 1,
				"additionalProperties": {"type": "string"}
			},
			"fonts": {
				"type": "object",
				"properties": {
					"primary": {"$ref": "#/definitions/fontFamily"},
					"secondary": {"$ref": "#/definitions/fontFamily"},
					"fallback": {"type": "string"}
				}
			},
			"logos": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			},
			"placeholders": {"type": "object"}
		}
	},
	"definitions": {
		"fontFamily": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"variants": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["src"],
						"properties": {
							"src": {"type": "string", "minLength": 1},
							"weight": {"type": "integer"},
							"style": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`

// catalog is an immutable snapshot of the parsed brands file. Reload swaps the
// whole snapshot so readers never observe a half-applied update.
type catalog struct {
	brands map[string]domain.BrandConfig
	ids    []string
}

// Store serves brand configurations from a JSON file on disk.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	catalog *catalog
}

// New loads the brands file at path and returns a ready store. The file must
// exist and validate at startup; a service with no brand catalog cannot serve
// anything useful.
func New(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a brand configuration by its exact identifier.
func (s *Store) Get(ctx context.Context, brandID string) (*domain.BrandConfig, error) {
	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()

	cfg, ok := c.brands[brandID]
	if !ok {
		return nil, &domain.BrandNotFoundError{BrandID: brandID, Available: c.ids}
	}
	return &cfg, nil
}

// IDs returns all brand identifiers in the order they appear in the file.
func (s *Store) IDs() []string {
	s.mu.RLock()
	c := s.catalog
	s.mu.RUnlock()

	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Reload re-reads and validates the brands file, then atomically swaps the
// in-memory catalog. On any error the previous catalog remains in effect.
func (s *Store) Reload(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return apperrors.InvalidConfig(fmt.Sprintf("read brands file %s", s.path), err)
	}

	c, err := parseCatalog(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "brand catalog loaded",
		slog.String("path", s.path),
		slog.Int("brands", len(c.ids)),
	)
	return nil
}

// Healthy reports whether the brands file is still readable. Registered with
// the readiness checker so a deleted or unmounted config volume shows up.
func (s *Store) Healthy(ctx context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("brands file: %w", err)
	}
	return nil
}

func parseCatalog(data []byte) (*catalog, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(brandsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, apperrors.InvalidConfig("brands file is not valid JSON", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, apperrors.InvalidConfig(
			fmt.Sprintf("brands file failed schema validation: %s", strings.Join(msgs, "; ")), nil)
	}

	var brands map[string]domain.BrandConfig
	if err := json.Unmarshal(data, &brands); err != nil {
		return nil, apperrors.InvalidConfig("decode brands file", err)
	}

	for id, cfg := range brands {
		if err := validator.Validate(cfg); err != nil {
			return nil, apperrors.InvalidConfig(fmt.Sprintf("brand %q", id), err)
		}
	}

	ids, err := topLevelKeys(data)
	if err != nil {
		return nil, apperrors.InvalidConfig("scan brand identifiers", err)
	}

	return &catalog{brands: brands, ids: ids}, nil
}

// topLevelKeys extracts the top-level object keys in document order. A plain
// unmarshal into a map loses ordering, and the identifier order in the file
// is the order clients see in listings and not-found messages.
func topLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		keys = append(keys, key)

		// Skip the brand body; only the key order matters here.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
