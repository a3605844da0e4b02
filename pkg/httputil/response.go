package httputil

import (
	"github.com/valyala/fasthttp"
)

// WriteText writes a plain-text response with the given status
func WriteText(ctx *fasthttp.RequestCtx, status int, body string) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(status)
	ctx.SetBodyString(body)
}

// WriteOK writes a 200 plain-text response
func WriteOK(ctx *fasthttp.RequestCtx, body string) {
	WriteText(ctx, fasthttp.StatusOK, body)
}
