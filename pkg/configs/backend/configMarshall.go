package backend

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/backend.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

// Configuration of the weaved server.
//
// This type is marshalling value and mutable.
// Consider to use immutable version, `WeavedConfig`.
type WeavedConfigMarshall struct {
	Port     int32                  `yaml:"port"`
	Database string                 `yaml:"database"`
	Cluster  *ClusterConfigMarshall `yaml:"cluster"`
}

var _ Marshalled[*WeavedConfig] = &WeavedConfigMarshall{}

func (w *WeavedConfigMarshall) trySeal(path string) *WeavedConfig {
	return &WeavedConfig{
		port:     required(w.Port, path+".port"),
		database: required(w.Database, path+".database"),
		cluster:  nonnil(w.Cluster, path+".cluster").trySeal(path + ".cluster"),
	}
}

type ClusterConfigMarshall struct {
	Namespace string `yaml:"namespace"`
	Domain    string `yaml:"domain,omitempty"`
}

func (c *ClusterConfigMarshall) trySeal(path string) *ClusterConfig {
	domain := c.Domain
	if domain == "" {
		domain = "cluster.local"
	}
	return &ClusterConfig{
		namespace: required(c.Namespace, path+".namespace"),
		domain:    domain,
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
