// Package paging provides the continuation-token page envelope returned by
// the blog API list endpoints.
//
// List endpoints accept a page size and an opaque continuation token:
//
//	params := paging.Params{Size: 20}
//	page, err := posts.List(ctx, params)
//	if page.HasMore {
//	    params.NextToken = *page.NextToken
//	}
//
// Pages decoded from the wire are passed through Normalize so that callers
// can rely on two properties:
//   - len(page.Result) <= requested size
//   - !page.HasMore implies page.NextToken == nil
//
// Collect walks every page with a PagingFunc.
package paging
