// pkg/registry/schema.go
package registry

// EngineRegistry describes every engine the calculators expose.
type EngineRegistry struct {
	Version     string   `yaml:"version" json:"version"`
	LastUpdated string   `yaml:"lastUpdated" json:"lastUpdated"`
	Engines     []Engine `yaml:"engines" json:"engines"`
}

type Engine struct {
	ID                   string                 `yaml:"id" json:"id"`
	DisplayName          string                 `yaml:"displayName" json:"displayName"`
	Description          string                 `yaml:"description" json:"description"`
	Category             string                 `yaml:"category" json:"category"`
	Version              string                 `yaml:"version" json:"version"`
	TaskType             string                 `yaml:"taskType" json:"taskType"`
	ImplementationStatus string                 `yaml:"implementationStatus" json:"implementationStatus"`
	InputSchema          map[string]interface{} `yaml:"inputSchema" json:"inputSchema,omitempty"`
	ErrorCodes           []string               `yaml:"errorCodes" json:"errorCodes"`
	Tags                 []string               `yaml:"tags" json:"tags,omitempty"`
}
