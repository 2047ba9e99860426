package db

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition with one shard and no replicas.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{
			Name:   name,
			Shards: 1,
		},
	}
}

// Shards sets number_of_shards.
func (b *IndexBuilder) Shards(n int) *IndexBuilder {
	b.def.Shards = n
	return b
}

// Replicas sets number_of_replicas.
func (b *IndexBuilder) Replicas(n int) *IndexBuilder {
	b.def.Replicas = n
	return b
}

// Text adds an analyzed text field. An empty analyzer uses the index default.
func (b *IndexBuilder) Text(name, analyzer string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:     name,
		Type:     FieldText,
		Analyzer: analyzer,
	})
	return b
}

// Keyword adds an exact-value keyword field. Keyword fields hold one or many values.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	return b.field(name, FieldKeyword)
}

// Date adds a date field.
func (b *IndexBuilder) Date(name string) *IndexBuilder {
	return b.field(name, FieldDate)
}

// Integer adds an integer field.
func (b *IndexBuilder) Integer(name string) *IndexBuilder {
	return b.field(name, FieldInteger)
}

// Float adds a float field.
func (b *IndexBuilder) Float(name string) *IndexBuilder {
	return b.field(name, FieldFloat)
}

// Boolean adds a boolean field.
func (b *IndexBuilder) Boolean(name string) *IndexBuilder {
	return b.field(name, FieldBoolean)
}

func (b *IndexBuilder) field(name string, t FieldType) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: t})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
