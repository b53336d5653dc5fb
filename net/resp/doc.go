// Package resp decodes the standard response envelope of the blog API:
//
//	{
//	  "code": 200,          // business code, mirrors HTTP status
//	  "message": "...",     // optional human readable message
//	  "data": {...}         // payload
//	}
//
// Decode turns a raw response into either the typed payload or an
// *ecode.Error carrying the server message.
package resp
