package maven

// ArtifactHandler describes how an artifact type is laid out on disk.
type ArtifactHandler struct {
	Extension  string // File extension without the dot
	Classifier string // Classifier implied by the type, empty for most types
}

// handlers mirrors the stock artifact handlers of the build tool.
var handlers = map[string]ArtifactHandler{
	"pom":          {Extension: "pom"},
	"jar":          {Extension: "jar"},
	"war":          {Extension: "war"},
	"ear":          {Extension: "ear"},
	"rar":          {Extension: "rar"},
	"ejb":          {Extension: "jar"},
	"ejb-client":   {Extension: "jar", Classifier: "client"},
	"maven-plugin": {Extension: "jar"},
	"test-jar":     {Extension: "jar", Classifier: "tests"},
	"java-source":  {Extension: "jar", Classifier: "sources"},
	"javadoc":      {Extension: "jar", Classifier: "javadoc"},
}

// HandlerFor returns the handler of an artifact type. Unknown types use the type
// itself as extension.
func HandlerFor(artifactType string) ArtifactHandler {
	if h, ok := handlers[artifactType]; ok {
		return h
	}
	return ArtifactHandler{Extension: artifactType}
}
