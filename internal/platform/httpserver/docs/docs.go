// Package docs registers the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/api/pricing/v1/calculate": {
            "post": {"tags": ["pricing"], "summary": "Calculate a pricing breakdown for line items", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}, "422": {"description": "Currency mismatch or unsupported currency"}}}
        },
        "/api/pricing/v1/validate": {
            "post": {"tags": ["pricing"], "summary": "Validate caller supplied offer totals", "responses": {"200": {"description": "OK"}}}
        },
        "/api/pricing/v1/convert": {
            "post": {"tags": ["pricing"], "summary": "Convert an amount between supported currencies", "responses": {"200": {"description": "OK"}, "422": {"description": "Unsupported currency"}}}
        },
        "/api/pricing/v1/currencies": {
            "get": {"tags": ["pricing"], "summary": "List supported currencies", "security": [], "responses": {"200": {"description": "OK"}}}
        },
        "/api/pricing/v1/creators/{creator_id}/rate-cards": {
            "get": {"tags": ["pricing"], "summary": "List a creator's active rate cards", "parameters": [{"name": "creator_id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["pricing"], "summary": "Create or replace a rate card", "parameters": [{"name": "creator_id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}}}
        },
        "/api/pricing/v1/quotes": {
            "post": {"tags": ["pricing"], "summary": "Price an offer from rate cards", "parameters": [{"name": "Idempotency-Key", "in": "header", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}, "200": {"description": "Replayed"}, "409": {"description": "Idempotency conflict"}}}
        },
        "/api/pricing/v1/quotes/{quote_id}": {
            "get": {"tags": ["pricing"], "summary": "Get a stored quote", "parameters": [{"name": "quote_id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/api/pricing/v1/reports/monthly": {
            "get": {"tags": ["pricing"], "summary": "Per currency platform fee totals for a month", "parameters": [{"name": "month", "in": "query", "required": true, "type": "string", "format": "YYYY-MM"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/safety/v1/analyze": {
            "post": {"tags": ["safety"], "summary": "Score and redact free text", "responses": {"200": {"description": "OK"}}}
        },
        "/api/safety/v1/messages/sanitize": {
            "post": {"tags": ["safety"], "summary": "Sanitize a chat message and record violations", "responses": {"200": {"description": "OK"}}}
        },
        "/api/safety/v1/profiles/mask": {
            "post": {"tags": ["safety"], "summary": "Mask profile contact details for a viewer", "responses": {"200": {"description": "OK"}}}
        },
        "/api/safety/v1/fields/sanitize": {
            "post": {"tags": ["safety"], "summary": "Sanitize one profile field", "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown field"}}}
        },
        "/api/safety/v1/files/gate": {
            "post": {"tags": ["safety"], "summary": "Decide whether a file share needs gating", "responses": {"200": {"description": "OK"}}}
        },
        "/api/safety/v1/links/validate": {
            "post": {"tags": ["safety"], "summary": "Validate an external link", "responses": {"200": {"description": "OK"}}}
        },
        "/api/safety/v1/violations": {
            "get": {"tags": ["safety"], "summary": "List recorded violation logs", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "creatorhub API",
	Description:      "Offer pricing and content safety endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
