package util

type ContextKey string

func (c ContextKey) String() string {
	return "twitchlink_" + string(c)
}

var IdentifierContextKey ContextKey = "identifier"
var PipelineContextKey ContextKey = "pipeline"
