package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>datagenie — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the pipeline/config endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "datagenie", "version": "v0.1.0" },
  "paths": {
    "/api/load_configs": {
      "get": { "summary": "Load all project configurations", "responses": { "200": { "description": "configs list" } } }
    },
    "/api/save_config": {
      "post": {
        "summary": "Upsert a named project configuration",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"config":{"type":"object"}}}}}},
        "responses": { "200": { "description": "saved" }, "400": { "description": "missing name or config" } }
      }
    },
    "/api/validate_script": {
      "post": { "summary": "Validate a script by compilation", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"script":{"type":"string"}}}}}}, "responses": { "200": { "description": "validity verdict" } } }
    },
    "/api/sample_docs": {
      "post": { "summary": "Fetch sample documents via an aggregation pipeline", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"mongo_uri":{"type":"string"},"collection":{"type":"string"},"pipeline":{"type":"array"},"limit":{"type":"integer"}}}}}}, "responses": { "200": { "description": "sample documents" }, "500": { "description": "store error" } } }
    },
    "/api/export": {
      "post": { "summary": "Export the graded report as HTML", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"graded":{"type":"array"}}}}}}, "responses": { "200": { "description": "report.html download" } } }
    },
    "/api/process_llm": {
      "post": { "summary": "Run a free-form LLM prompt over a document", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"prompt":{"type":"string"},"doc":{"type":"string"}}}}}}, "responses": { "200": { "description": "generator output" }, "500": { "description": "backend error" } } }
    },
    "/api/process_pipeline_llm": {
      "post": { "summary": "Translate a description into an aggregation pipeline", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"description":{"type":"string"}}}}}}, "responses": { "200": { "description": "pipeline array" }, "400": { "description": "extraction failure" }, "500": { "description": "backend error" } } }
    },
    "/ping": { "get": { "summary": "Liveness ping", "responses": { "200": { "description": "pong" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
