package context

import "context"

type ContextKey string

var (
	RequestIDKey = ContextKey("X-Request-Id")
	MethodKey    = ContextKey("X-Method")
	RouteKey     = ContextKey("X-Route")
	RemoteIPKey  = ContextKey("X-Remote-Ip")
	UserKey      = ContextKey("X-User")
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, MethodKey, method)
}

func GetMethod(ctx context.Context) string {
	value, ok := ctx.Value(MethodKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, RouteKey, route)
}

func GetRoute(ctx context.Context) string {
	value, ok := ctx.Value(RouteKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, RemoteIPKey, remoteIP)
}

func GetRemoteIP(ctx context.Context) string {
	value, ok := ctx.Value(RemoteIPKey).(string)
	if !ok {
		return ""
	}
	return value
}

// SetUser records the capturing user's display name, taken from the X-User
// header. There is no authentication; this is provenance, not identity.
func SetUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func GetUser(ctx context.Context) string {
	value, ok := ctx.Value(UserKey).(string)
	if !ok {
		return ""
	}
	return value
}
