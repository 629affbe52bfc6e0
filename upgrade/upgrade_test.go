package upgrade

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
	"github.com/specmorph/oasdoc/specerrors"
)

func parseLegacy(t *testing.T, tree map[string]any) *legacy.Document {
	t.Helper()
	doc, err := legacy.ParseDocument(tree)
	require.NoError(t, err)
	return doc
}

func minimalSwagger(extra map[string]any) map[string]any {
	tree := map[string]any{
		"swagger": "2.0",
		"info":    map[string]any{"title": "t", "version": "1"},
	}
	for k, v := range extra {
		tree[k] = v
	}
	return tree
}

func TestUpgradeServers(t *testing.T) {
	t.Run("host with schemes", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(map[string]any{
			"host":     "api.example.com",
			"basePath": "/v2",
			"schemes":  []any{"https", "http"},
		}))
		result, err := Upgrade(doc)
		require.NoError(t, err)

		require.Len(t, result.Document.Servers, 2)
		assert.Equal(t, "https://api.example.com/v2", result.Document.Servers[0].URL)
		assert.Equal(t, "http://api.example.com/v2", result.Document.Servers[1].URL)
	})

	t.Run("host without schemes defaults to https", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(map[string]any{"host": "api.example.com"}))
		result, err := Upgrade(doc)
		require.NoError(t, err)

		require.Len(t, result.Document.Servers, 1)
		assert.Equal(t, "https://api.example.com", result.Document.Servers[0].URL)
		assert.NotZero(t, result.InfoCount)
	})

	t.Run("default scheme option", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(map[string]any{"host": "internal.example.com"}))
		result, err := Upgrade(doc, WithDefaultScheme("http"))
		require.NoError(t, err)
		assert.Equal(t, "http://internal.example.com", result.Document.Servers[0].URL)
	})

	t.Run("no host yields relative server", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(nil))
		result, err := Upgrade(doc)
		require.NoError(t, err)

		require.Len(t, result.Document.Servers, 1)
		assert.Equal(t, "/", result.Document.Servers[0].URL)
	})
}

func TestUpgradeDefinitionsAndRefRewrite(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"definitions": map[string]any{
			"Pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"owner": map[string]any{"$ref": "#/definitions/Owner"},
				},
			},
			"Owner": map[string]any{"type": "object"},
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"description": "ok",
							"schema":      map[string]any{"$ref": "#/definitions/Pet"},
						},
					},
				},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)
	out := result.Document

	require.NotNil(t, out.Components)
	require.Contains(t, out.Components.Schemas, "Pet")

	pet := out.Components.Schemas["Pet"]
	obj, ok := pet.Kind.(model.ObjectKind)
	require.True(t, ok)
	ownerRef, ok := obj.Properties["owner"].Kind.(model.ReferenceKind)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Owner", ownerRef.Ref.Raw)

	resp := out.Paths.Items["/pets"].Get.Responses.Codes["200"]
	mt := resp.Content["application/json"]
	require.NotNil(t, mt)
	ref, ok := mt.Schema.Kind.(model.ReferenceKind)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet", ref.Ref.Raw)
}

func TestUpgradeDoesNotMutateSource(t *testing.T) {
	tree := minimalSwagger(map[string]any{
		"definitions": map[string]any{
			"Pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"owner": map[string]any{"$ref": "#/definitions/Owner"},
				},
			},
			"Owner": map[string]any{"type": "object"},
		},
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{
							"name":             "ids",
							"in":               "query",
							"type":             "array",
							"items":            map[string]any{"type": "string"},
							"collectionFormat": "tsv",
							"x-note":           "keep me",
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "ok",
							"headers": map[string]any{
								"X-Ids": map[string]any{
									"type":             "array",
									"items":            map[string]any{"type": "string"},
									"collectionFormat": "pipes",
									"x-note":           "keep me too",
								},
							},
						},
					},
				},
			},
		},
	})
	doc := parseLegacy(t, tree)

	first, err := Upgrade(doc)
	require.NoError(t, err)

	obj := doc.Definitions["Pet"].Kind.(model.ObjectKind)
	ref := obj.Properties["owner"].Kind.(model.ReferenceKind)
	assert.Equal(t, "#/definitions/Owner", ref.Ref.Raw, "source schema must keep its 2.0 reference")

	srcParam := doc.Paths.Items["/pets"].Get.Parameters[0]
	assert.Equal(t, model.Extensions{"x-note": "keep me"}, srcParam.Extra,
		"degraded collectionFormat must not leak into the source parameter")
	srcHeader := doc.Paths.Items["/pets"].Get.Responses.Codes["200"].Headers["X-Ids"]
	assert.Equal(t, model.Extensions{"x-note": "keep me too"}, srcHeader.Extra,
		"degraded header collectionFormat must not leak into the source header")

	dstParam := first.Document.Paths.Items["/pets"].Get.Parameters[0]
	assert.Equal(t, "keep me", dstParam.Extra["x-note"])
	assert.Equal(t, "tsv", dstParam.Extra[ExtensionKeyCollectionFormat])

	second, err := Upgrade(doc)
	require.NoError(t, err)
	assert.Equal(t, first.Document.ToTree(), second.Document.ToTree(),
		"upgrading the same in-memory document twice must give the same output")
	assert.Equal(t, first.Notes, second.Notes)
}

func TestUpgradeResultOwnsItsTree(t *testing.T) {
	fixture := func() map[string]any {
		return minimalSwagger(map[string]any{
			"x-origin":     map[string]any{"kind": "test"},
			"tags":         []any{map[string]any{"name": "pets"}},
			"externalDocs": map[string]any{"url": "https://example.com"},
			"security":     []any{map[string]any{"oauth": []any{"read"}}},
			"securityDefinitions": map[string]any{
				"oauth": map[string]any{
					"type":             "oauth2",
					"flow":             "implicit",
					"authorizationUrl": "https://auth.example.com",
					"scopes":           map[string]any{"read": "read access"},
				},
			},
			"definitions": map[string]any{
				"Pet": map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
					"x-table":    "pets",
				},
			},
		})
	}
	doc := parseLegacy(t, fixture())
	pristine := parseLegacy(t, fixture())

	result, err := Upgrade(doc)
	require.NoError(t, err)

	out := result.Document
	out.Info.Title = "changed"
	out.Extra["x-origin"].(map[string]any)["kind"] = "changed"
	out.Tags[0].Name = "changed"
	out.ExternalDocs.URL = "changed"
	out.Security[0]["oauth"][0] = "changed"
	out.Components.SecuritySchemes["oauth"].Flows.Implicit.Scopes["read"] = "changed"
	pet := out.Components.Schemas["Pet"]
	pet.Extra["x-table"] = "changed"
	pet.Kind.(model.ObjectKind).Properties["name"].Title = "changed"

	assert.Equal(t, pristine.ToTree(), doc.ToTree(), "mutating the upgraded document must not show through the source")
}

func TestUpgradeInvalidDefinitionKey(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"definitions": map[string]any{
			"Response[User]": map[string]any{"type": "object"},
		},
		"paths": map[string]any{
			"/users": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"description": "ok",
							"schema":      map[string]any{"$ref": "#/definitions/Response[User]"},
						},
					},
				},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)
	out := result.Document

	require.Contains(t, out.Components.Schemas, "ResponseUser")
	assert.NotContains(t, out.Components.Schemas, "Response[User]")

	mt := out.Paths.Items["/users"].Get.Responses.Codes["200"].Content["application/json"]
	ref := mt.Schema.Kind.(model.ReferenceKind)
	assert.Equal(t, "#/components/schemas/ResponseUser", ref.Ref.Raw)
	assert.True(t, result.HasWarnings())
}

func TestUpgradeBodyParameter(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"consumes": []any{"application/xml"},
		"paths": map[string]any{
			"/pets": map[string]any{
				"post": map[string]any{
					"parameters": []any{
						map[string]any{
							"name":        "pet",
							"in":          "body",
							"description": "the pet to add",
							"required":    true,
							"schema":      map[string]any{"type": "object"},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{"description": "created"},
					},
				},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)

	op := result.Document.Paths.Items["/pets"].Post
	require.NotNil(t, op.RequestBody)
	assert.True(t, op.RequestBody.Required)
	assert.Equal(t, "the pet to add", op.RequestBody.Description)
	assert.Empty(t, op.Parameters)

	// document-level consumes wins when the operation has none
	require.Contains(t, op.RequestBody.Content, "application/xml")
}

func TestUpgradeBodyParameterConsumesFallback(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{
				"post": map[string]any{
					"parameters": []any{
						map[string]any{
							"name":   "pet",
							"in":     "body",
							"schema": map[string]any{"type": "object"},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{"description": "created"},
					},
				},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)
	rb := result.Document.Paths.Items["/pets"].Post.RequestBody
	require.Contains(t, rb.Content, "application/json")
}

func TestUpgradeMediaTypeCollapse(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{
				"post": map[string]any{
					"consumes": []any{"application/xml", "application/json"},
					"parameters": []any{
						map[string]any{
							"name":   "pet",
							"in":     "body",
							"schema": map[string]any{"type": "object"},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{"description": "created"},
					},
				},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)

	// a consumes list containing application/json collapses to it alone
	rb := result.Document.Paths.Items["/pets"].Post.RequestBody
	require.Len(t, rb.Content, 1)
	require.Contains(t, rb.Content, "application/json")
}

func TestUpgradeFormDataParameters(t *testing.T) {
	t.Run("urlencoded", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(map[string]any{
			"paths": map[string]any{
				"/login": map[string]any{
					"post": map[string]any{
						"parameters": []any{
							map[string]any{"name": "user", "in": "formData", "type": "string", "required": true},
							map[string]any{"name": "pass", "in": "formData", "type": "string", "required": true},
						},
						"responses": map[string]any{
							"200": map[string]any{"description": "ok"},
						},
					},
				},
			},
		}))

		result, err := Upgrade(doc)
		require.NoError(t, err)

		rb := result.Document.Paths.Items["/login"].Post.RequestBody
		require.NotNil(t, rb)
		assert.True(t, rb.Required)
		mt := rb.Content["application/x-www-form-urlencoded"]
		require.NotNil(t, mt)

		obj, ok := mt.Schema.Kind.(model.ObjectKind)
		require.True(t, ok)
		assert.Len(t, obj.Properties, 2)
		assert.Equal(t, []string{"pass", "user"}, obj.Required)
	})

	t.Run("file parameter forces multipart", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(map[string]any{
			"paths": map[string]any{
				"/upload": map[string]any{
					"post": map[string]any{
						"parameters": []any{
							map[string]any{"name": "avatar", "in": "formData", "type": "file"},
							map[string]any{"name": "caption", "in": "formData", "type": "string"},
						},
						"responses": map[string]any{
							"200": map[string]any{"description": "ok"},
						},
					},
				},
			},
		}))

		result, err := Upgrade(doc)
		require.NoError(t, err)

		rb := result.Document.Paths.Items["/upload"].Post.RequestBody
		mt := rb.Content["multipart/form-data"]
		require.NotNil(t, mt)

		obj := mt.Schema.Kind.(model.ObjectKind)
		avatar, ok := obj.Properties["avatar"].Kind.(model.StringKind)
		require.True(t, ok)
		assert.Equal(t, "binary", avatar.Format)
	})

	t.Run("duplicate names conflict", func(t *testing.T) {
		doc := parseLegacy(t, minimalSwagger(map[string]any{
			"paths": map[string]any{
				"/x": map[string]any{
					"post": map[string]any{
						"parameters": []any{
							map[string]any{"name": "dup", "in": "formData", "type": "string"},
							map[string]any{"name": "dup", "in": "formData", "type": "integer"},
						},
						"responses": map[string]any{
							"200": map[string]any{"description": "ok"},
						},
					},
				},
			},
		}))

		_, err := Upgrade(doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, specerrors.ErrUpgrade))
		assert.True(t, errors.Is(err, specerrors.ErrMerge))
	})
}

func TestUpgradeBodyAndFormDataConflict(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"paths": map[string]any{
			"/x": map[string]any{
				"post": map[string]any{
					"parameters": []any{
						map[string]any{"name": "payload", "in": "body", "schema": map[string]any{"type": "object"}},
						map[string]any{"name": "field", "in": "formData", "type": "string"},
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "ok"},
					},
				},
			},
		},
	}))

	_, err := Upgrade(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrUpgrade))

	var ue *specerrors.UpgradeError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "paths./x.post", ue.Path)
}

func TestUpgradeCollectionFormats(t *testing.T) {
	queryArray := func(format string) map[string]any {
		p := map[string]any{
			"name":  "ids",
			"in":    "query",
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
		if format != "" {
			p["collectionFormat"] = format
		}
		return minimalSwagger(map[string]any{
			"paths": map[string]any{
				"/x": map[string]any{
					"get": map[string]any{
						"parameters": []any{p},
						"responses": map[string]any{
							"200": map[string]any{"description": "ok"},
						},
					},
				},
			},
		})
	}

	param := func(t *testing.T, tree map[string]any) (*model.Parameter, *Result) {
		result, err := Upgrade(parseLegacy(t, tree))
		require.NoError(t, err)
		params := result.Document.Paths.Items["/x"].Get.Parameters
		require.Len(t, params, 1)
		return params[0], result
	}

	t.Run("csv", func(t *testing.T) {
		p, _ := param(t, queryArray("csv"))
		assert.Equal(t, "form", p.Style)
		require.NotNil(t, p.Explode)
		assert.False(t, *p.Explode)
	})

	t.Run("default is csv", func(t *testing.T) {
		p, _ := param(t, queryArray(""))
		assert.Equal(t, "form", p.Style)
		require.NotNil(t, p.Explode)
		assert.False(t, *p.Explode)
	})

	t.Run("multi", func(t *testing.T) {
		p, _ := param(t, queryArray("multi"))
		assert.Equal(t, "form", p.Style)
		require.NotNil(t, p.Explode)
		assert.True(t, *p.Explode)
	})

	t.Run("pipes", func(t *testing.T) {
		p, _ := param(t, queryArray("pipes"))
		assert.Equal(t, "pipeDelimited", p.Style)
	})

	t.Run("ssv", func(t *testing.T) {
		p, _ := param(t, queryArray("ssv"))
		assert.Equal(t, "spaceDelimited", p.Style)
	})

	t.Run("tsv degrades with extension", func(t *testing.T) {
		p, result := param(t, queryArray("tsv"))
		assert.Empty(t, p.Style)
		assert.Equal(t, "tsv", p.Extra[ExtensionKeyCollectionFormat])
		assert.True(t, result.HasWarnings())
	})
}

func TestUpgradeSecurityDefinitions(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"securityDefinitions": map[string]any{
			"basicAuth": map[string]any{"type": "basic"},
			"keyAuth": map[string]any{
				"type": "apiKey",
				"name": "X-Key",
				"in":   "header",
			},
			"implicitAuth": map[string]any{
				"type":             "oauth2",
				"flow":             "implicit",
				"authorizationUrl": "https://auth.example.com/dialog",
				"scopes":           map[string]any{"read": "read access"},
			},
			"codeAuth": map[string]any{
				"type":             "oauth2",
				"flow":             "accessCode",
				"authorizationUrl": "https://auth.example.com/authorize",
				"tokenUrl":         "https://auth.example.com/token",
				"scopes":           map[string]any{},
			},
			"appAuth": map[string]any{
				"type":     "oauth2",
				"flow":     "application",
				"tokenUrl": "https://auth.example.com/token",
				"scopes":   map[string]any{},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)
	schemes := result.Document.Components.SecuritySchemes

	basic := schemes["basicAuth"]
	require.NotNil(t, basic)
	assert.Equal(t, model.SecurityTypeHTTP, basic.Type)
	assert.Equal(t, "basic", basic.Scheme)

	key := schemes["keyAuth"]
	require.NotNil(t, key)
	assert.Equal(t, model.SecurityTypeAPIKey, key.Type)
	assert.Equal(t, "X-Key", key.Name)

	implicit := schemes["implicitAuth"]
	require.NotNil(t, implicit.Flows)
	require.NotNil(t, implicit.Flows.Implicit)
	assert.Equal(t, "https://auth.example.com/dialog", implicit.Flows.Implicit.AuthorizationURL)
	assert.Equal(t, "read access", implicit.Flows.Implicit.Scopes["read"])

	code := schemes["codeAuth"]
	require.NotNil(t, code.Flows.AuthorizationCode)
	assert.Equal(t, "https://auth.example.com/token", code.Flows.AuthorizationCode.TokenURL)

	app := schemes["appAuth"]
	require.NotNil(t, app.Flows.ClientCredentials)
}

func TestUpgradeResponseHeadersAndExamples(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{
		"produces": []any{"application/json"},
		"paths": map[string]any{
			"/x": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"description": "ok",
							"schema":      map[string]any{"type": "object"},
							"headers": map[string]any{
								"X-Rate-Limit": map[string]any{"type": "integer"},
							},
							"examples": map[string]any{
								"application/json": map[string]any{"id": float64(1)},
							},
						},
					},
				},
			},
		},
	}))

	result, err := Upgrade(doc)
	require.NoError(t, err)

	resp := result.Document.Paths.Items["/x"].Get.Responses.Codes["200"]
	require.Contains(t, resp.Headers, "X-Rate-Limit")
	_, ok := resp.Headers["X-Rate-Limit"].Schema.Kind.(model.IntegerKind)
	assert.True(t, ok)

	mt := resp.Content["application/json"]
	require.NotNil(t, mt)
	assert.Equal(t, map[string]any{"id": float64(1)}, mt.Example)
}

func TestUpgradeDeterministic(t *testing.T) {
	tree := minimalSwagger(map[string]any{
		"host":    "api.example.com",
		"schemes": []any{"https"},
		"definitions": map[string]any{
			"A": map[string]any{"type": "object"},
			"B": map[string]any{"$ref": "#/definitions/A"},
		},
		"paths": map[string]any{
			"/a": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{"description": "ok"},
					},
				},
			},
		},
	})

	first, err := Upgrade(parseLegacy(t, tree))
	require.NoError(t, err)
	second, err := Upgrade(parseLegacy(t, tree))
	require.NoError(t, err)

	assert.Equal(t, first.Document.ToTree(), second.Document.ToTree())
	assert.Equal(t, first.Notes, second.Notes)
}

func TestUpgradeNoteCounts(t *testing.T) {
	doc := parseLegacy(t, minimalSwagger(map[string]any{"host": "x.example.com"}))

	result, err := Upgrade(doc)
	require.NoError(t, err)
	assert.Equal(t, result.InfoCount, len(result.Notes))
	assert.False(t, result.HasWarnings())
	assert.False(t, result.HasCriticalNotes())

	quiet, err := Upgrade(doc, WithoutInfoNotes())
	require.NoError(t, err)
	assert.Empty(t, quiet.Notes)
}

func TestUpgradeNilDocument(t *testing.T) {
	_, err := Upgrade(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerrors.ErrUpgrade))
}

func TestUpgradeVersionStamp(t *testing.T) {
	result, err := Upgrade(parseLegacy(t, minimalSwagger(nil)))
	require.NoError(t, err)
	assert.Equal(t, TargetVersion, result.Document.OpenAPI)
}
