package httpapi

import (
	"net/http"

	"github.com/cinegate/cinegate/internal/httpjson"
)

// handleOpenAPI serves a minimal OpenAPI document covering the v1 API.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "CineGate API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OpenAPIDocument": map[string]any{
					"type":                 "object",
					"additionalProperties": true,
				},
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"type": "string"},
					},
					"required": []any{"error"},
				},
				"Content": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "integer"},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"genre":       map[string]any{"type": "string"},
						"rating":      map[string]any{"type": "number", "format": "double"},
						"year":        map[string]any{"type": "integer"},
						"type":        map[string]any{"type": "string", "enum": []any{"movie", "series", "tv"}},
						"imageUrl":    map[string]any{"type": "string"},
						"videoUrl":    map[string]any{"type": "string"},
						"isFavorite":  map[string]any{"type": "boolean"},
					},
					"required":             []any{"id", "title", "genre", "rating", "year", "type"},
					"additionalProperties": false,
				},
				"CatalogState": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"tab":     map[string]any{"type": "string", "enum": []any{"home", "movies", "series", "tv", "genres", "search", "favorites", "profile"}},
						"query":   map[string]any{"type": "string"},
						"loading": map[string]any{"type": "boolean"},
						"items": map[string]any{
							"type":  "array",
							"items": map[string]any{"$ref": "#/components/schemas/Content"},
						},
					},
					"additionalProperties": false,
				},
				"PlayerState": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"open":    map[string]any{"type": "boolean"},
						"mode":    map[string]any{"type": "string", "enum": []any{"video", "live"}},
						"content": map[string]any{"$ref": "#/components/schemas/Content"},
					},
					"required":             []any{"open"},
					"additionalProperties": false,
				},
				"Draft": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"genre":       map[string]any{"type": "string"},
						"rating":      map[string]any{"type": "string", "description": "Free-form; coerced on submit, defaults to 0."},
						"year":        map[string]any{"type": "string", "description": "Free-form; coerced on submit, defaults to the current year."},
						"type":        map[string]any{"type": "string", "enum": []any{"movie", "series", "tv"}},
						"image_url":   map[string]any{"type": "string"},
						"video_url":   map[string]any{"type": "string"},
					},
					"additionalProperties": false,
				},
				"Notice": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":     map[string]any{"type": "string"},
						"time":   map[string]any{"type": "string", "format": "date-time"},
						"title":  map[string]any{"type": "string"},
						"detail": map[string]any{"type": "string"},
						"error":  map[string]any{"type": "boolean"},
					},
					"required":             []any{"id", "time", "title"},
					"additionalProperties": false,
				},
				"PosterResult": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"image_url": map[string]any{"type": "string"},
						"title":     map[string]any{"type": "string"},
						"prompt":    map[string]any{"type": "string"},
					},
					"required":             []any{"image_url", "title"},
					"additionalProperties": false,
				},
				"CredentialReport": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"success":               map[string]any{"type": "boolean"},
						"working_secret":        map[string]any{"type": "string"},
						"working_secret_masked": map[string]any{"type": "string"},
						"results": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"masked_secret": map[string]any{"type": "string"},
									"status":        map[string]any{"type": "string", "enum": []any{"SUCCESS", "TOKEN_OK_API_FAIL", "TOKEN_FAIL"}},
									"token_error":   map[string]any{"type": "string"},
									"api_error":     map[string]any{"type": "string"},
									"answer":        map[string]any{"type": "string"},
									"model":         map[string]any{"type": "string"},
								},
								"additionalProperties": false,
							},
						},
						"summary": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"total_tested": map[string]any{"type": "integer"},
								"working":      map[string]any{"type": "integer"},
								"query":        map[string]any{"type": "string"},
							},
							"additionalProperties": false,
						},
					},
					"required":             []any{"success", "results", "summary"},
					"additionalProperties": false,
				},
				"Settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"contentListUrl":   map[string]any{"type": "string"},
						"contentCreateUrl": map[string]any{"type": "string"},
						"geminiApiKey":     map[string]any{"type": "string"},
						"geminiModel":      map[string]any{"type": "string"},
						"openaiApiKey":     map[string]any{"type": "string"},
						"posterModel":      map[string]any{"type": "string"},
						"posterSize":       map[string]any{"type": "string"},
						"gigachatSecrets":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"gigachatScope":    map[string]any{"type": "string"},
					},
					"additionalProperties": false,
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/openapi.json": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/OpenAPIDocument")}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "SSE"}}},
			},
			"/api/v1/catalog": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/CatalogState"),
						"400": jsonErr,
					},
				},
			},
			"/api/v1/catalog/refresh": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{"200": jsonOK("#/components/schemas/CatalogState")},
				},
			},
			"/api/v1/catalog/tab": map[string]any{
				"put": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/CatalogState"),
						"400": jsonErr,
					},
				},
			},
			"/api/v1/catalog/search": map[string]any{
				"put": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/CatalogState"),
						"400": jsonErr,
					},
				},
			},
			"/api/v1/catalog/genres": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/catalog/profile": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/catalog/player": map[string]any{
				"get":    map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/PlayerState")}},
				"delete": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/PlayerState")}},
			},
			"/api/v1/catalog/{id}/favorite": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Content"),
						"404": jsonErr,
					},
				},
			},
			"/api/v1/catalog/{id}/play": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/PlayerState"),
						"404": jsonErr,
					},
				},
			},
			"/api/v1/admin/form": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Draft")}},
				"put": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Draft"),
						"400": jsonErr,
					},
				},
			},
			"/api/v1/admin/form/reset": map[string]any{
				"post": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Draft")}},
			},
			"/api/v1/admin/content": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{
						"201": map[string]any{"description": "Created"},
						"400": jsonErr,
						"409": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/admin/ai-search": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Draft"),
						"400": jsonErr,
						"409": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/admin/poster": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/PosterResult"),
						"400": jsonErr,
						"409": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/admin/credentials/test": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/CredentialReport"),
						"400": jsonErr,
						"409": jsonErr,
					},
				},
			},
			"/api/v1/admin/credentials/report": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/CredentialReport"),
						"404": jsonErr,
					},
				},
			},
			"/api/v1/admin/notices": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/settings": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{"200": jsonOK("#/components/schemas/Settings")},
				},
				"put": map[string]any{
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Settings"},
							},
						},
					},
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Settings"),
						"400": jsonErr,
					},
				},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
