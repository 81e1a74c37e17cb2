package projects

// Project is a named pipeline configuration persisted in the "projects"
// collection. Config is opaque to the service: it is stored and returned
// verbatim, never interpreted.
type Project struct {
	Name   string      `json:"name" bson:"name"`
	Config interface{} `json:"config" bson:"config"`
}
