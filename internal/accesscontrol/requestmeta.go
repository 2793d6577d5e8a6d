package accesscontrol

import "context"

// RequestMeta carries the client attribution fields copied onto every audit
// entry the guards write.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	Method    string
	Path      string
}

const contextRequestMetaKey ctxKey = "request_meta"

func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, contextRequestMetaKey, meta)
}

func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if meta, ok := ctx.Value(contextRequestMetaKey).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{}
}
