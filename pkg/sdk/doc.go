// Package esdocs is an embeddable Go client for article and user documents
// stored in Elasticsearch. It runs the same usecases as the esdocs HTTP
// service in-process, without going through HTTP.
//
//	client, err := esdocs.New(ctx,
//	    esdocs.WithElasticsearch("http://localhost:9200"),
//	    esdocs.WithIndexPrefix("app"),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	a, _ := client.Articles().Create(ctx, esdocs.ArticleInput{
//	    Title: "Go", Content: "Channels", Author: "rob", Category: "tech",
//	})
//	page, _ := client.Articles().Search(ctx, esdocs.SearchQuery{Query: "channels", Limit: 20})
//
// Missing documents are reported with errors matching ErrNotFound.
package esdocs
