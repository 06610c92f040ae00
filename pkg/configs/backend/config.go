package backend

type WeavedConfig struct {
	port     int32
	database string
	cluster  *ClusterConfig
}

func (c *WeavedConfig) Port() int32 {
	return c.port
}

// Connection string for the metadata database.
func (c *WeavedConfig) Database() string {
	return c.database
}

func (c *WeavedConfig) Cluster() *ClusterConfig {
	return c.cluster
}

// Configuration of the serving cluster the deployment locator reads.
//
// to get `ClusterConfig` instance, use `ClusterConfigMarshall.trySeal()`
// via `TrySeal`.
type ClusterConfig struct {
	namespace string
	domain    string
}

// k8s namespace where model servers live.
func (c *ClusterConfig) Namespace() string {
	return c.namespace
}

// k8s cluster domain. default = "cluster.local"
func (c *ClusterConfig) Domain() string {
	return c.domain
}
