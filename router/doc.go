// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method patterns.

Routes:

	POST /api/auth/login           operator login (public)
	POST /api/reseller/activate    activate/renew a device (bearer)
	POST /api/reseller/deactivate  deactivate a device (bearer)
	POST /api/reseller/uploadM3U   store a playlist file (bearer)
	GET  /api/reseller/users       device dashboard listing (bearer)
	GET  /api/checkDevice          device status poll (public)
	GET  /uploads/{file}           stored playlist files (public)
	GET  /health                   liveness probe

NewRouter builds the whole service graph from the single shared store
handle and the parsed config; nothing else constructs handlers.
*/
package router
