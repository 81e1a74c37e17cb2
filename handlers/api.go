package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/datagenie/datagenie/internal/llm"
	"github.com/datagenie/datagenie/internal/pipeline"
	"github.com/datagenie/datagenie/internal/projects"
	"github.com/datagenie/datagenie/internal/report"
	"github.com/datagenie/datagenie/internal/samples"
	"github.com/datagenie/datagenie/internal/script"
	"github.com/datagenie/datagenie/pkg/metrics"
)

// pipelinePrompt asks the generator for a bare JSON array; generators ignore
// the formatting instructions often enough that extraction still has to
// tolerate fences and commentary.
const pipelinePrompt = "Translate the following description into a valid MongoDB aggregation pipeline in JSON. " +
	"Only output the JSON array. All key fields must be in double quotes. " +
	"Do not include any Markdown formatting, code blocks, or triple backticks. " +
	"Description: %s"

// API holds handler dependencies
type API struct {
	projects *projects.Service
	sampler  *samples.Sampler
	gen      llm.Generator
	reports  *report.Writer
}

func NewAPI(p *projects.Service, s *samples.Sampler, g llm.Generator, r *report.Writer) *API {
	return &API{projects: p, sampler: s, gen: g, reports: r}
}

// Register wires all routes onto the engine.
func (a *API) Register(r *gin.Engine) {
	r.GET("/ping", a.Ping)

	api := r.Group("/api")
	api.GET("/load_configs", a.LoadConfigs)
	api.POST("/validate_script", a.ValidateScript)
	api.POST("/sample_docs", a.SampleDocs)
	api.POST("/export", a.Export)
	api.POST("/save_config", a.SaveConfig)
	api.POST("/process_llm", a.ProcessLLM)
	api.POST("/process_pipeline_llm", a.ProcessPipelineLLM)
}

// Ping is a trivial liveness probe used by the frontend.
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// LoadConfigs returns every stored project configuration.
func (a *API) LoadConfigs(c *gin.Context) {
	configs, err := a.projects.LoadAll(c.Request.Context())
	if err != nil {
		metrics.StoreErrors.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configs": configs})
}

// ValidateScript compiles the submitted script and reports validity. Compile
// failures are a 200 with valid:false, not an error status.
func (a *API) ValidateScript(c *gin.Context) {
	var req struct {
		Script string `json:"script"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := script.Validate(req.Script); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// SampleDocs runs an aggregation pipeline against a caller-named collection
// and returns up to limit documents.
func (a *API) SampleDocs(c *gin.Context) {
	var req struct {
		MongoURI   string      `json:"mongo_uri"`
		Collection string      `json:"collection"`
		Pipeline   interface{} `json:"pipeline"`
		Limit      int         `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "docs": []bson.M{}})
		return
	}
	if req.Collection == "" {
		req.Collection = "projects"
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	docs, err := a.sampler.Sample(c.Request.Context(), req.MongoURI, req.Collection, req.Pipeline, req.Limit)
	if err != nil {
		metrics.StoreErrors.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "docs": []bson.M{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": docs})
}

// Export regenerates the graded report file and streams it as a download.
func (a *API) Export(c *gin.Context) {
	var req struct {
		Graded []interface{} `json:"graded"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	path, err := a.reports.Export(c.Request.Context(), req.Graded)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, report.Filename)
}

// SaveConfig upserts a named project configuration (last write wins).
func (a *API) SaveConfig(c *gin.Context) {
	var req struct {
		Name   string      `json:"name"`
		Config interface{} `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.projects.Save(c.Request.Context(), req.Name, req.Config); err != nil {
		if errors.Is(err, projects.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name or config"})
			return
		}
		metrics.StoreErrors.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved", "name": req.Name})
}

// ProcessLLM sends a free-form prompt plus document context to the generator.
func (a *API) ProcessLLM(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
		Doc    string `json:"doc"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "llm_result": ""})
		return
	}
	fullPrompt := fmt.Sprintf("Prompt: %s\nDocument: %s", req.Prompt, req.Doc)
	result, err := a.gen.Generate(c.Request.Context(), fullPrompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "llm_result": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"llm_result": result})
}

// ProcessPipelineLLM translates a natural-language description into an
// aggregation pipeline via the generator and the extraction procedure.
// Extraction failures are 400s carrying the raw generator output so the
// caller can recover or re-prompt.
func (a *API) ProcessPipelineLLM(c *gin.Context) {
	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "pipeline": nil})
		return
	}

	prompt := fmt.Sprintf(pipelinePrompt, req.Description)
	raw, err := a.gen.Generate(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "pipeline": nil})
		return
	}

	stages, err := pipeline.Extract(raw)
	if err != nil {
		var xe *pipeline.ExtractError
		if errors.As(err, &xe) {
			metrics.PipelineExtractions.WithLabelValues(string(xe.Kind)).Inc()
			switch xe.Kind {
			case pipeline.KindNotAnArray:
				c.JSON(http.StatusBadRequest, gin.H{
					"error":        "Parsed JSON is not an array",
					"llm_error":    xe.Raw,
					"pipeline":     nil,
					"raw_pipeline": xe.Fragment,
				})
			case pipeline.KindDecodeError:
				c.JSON(http.StatusBadRequest, gin.H{
					"error":        fmt.Sprintf("JSON decode error: %v", xe.Err),
					"llm_error":    xe.Raw,
					"pipeline":     nil,
					"raw_pipeline": xe.Fragment,
				})
			default:
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "No pipeline array found in LLM response",
					"llm_error": xe.Raw,
					"pipeline":  nil,
				})
			}
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "pipeline": nil})
		return
	}

	metrics.PipelineExtractions.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"pipeline": stages})
}
