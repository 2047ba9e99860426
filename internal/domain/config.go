package domain

// KeyPrefix namespaces every cache key written by the service.
const KeyPrefix = "esdocs:"

// Document kinds, used as index name suffixes.
const (
	KindArticles = "articles"
	KindUsers    = "users"
)

// IndexSettings holds the shard layout applied when an index is created.
type IndexSettings struct {
	Shards   int
	Replicas int
}

// DefaultIndexSettings returns the single-node layout: one shard, no replicas.
func DefaultIndexSettings() IndexSettings {
	return IndexSettings{Shards: 1, Replicas: 0}
}

// IndexName joins the configured prefix and a document kind (app + articles = app_articles).
func IndexName(prefix, kind string) string {
	if prefix == "" {
		return kind
	}
	return prefix + "_" + kind
}
