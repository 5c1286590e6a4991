// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// Headers are examined in order (CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For, X-Real-IP) before falling back to RemoteAddr. When
// WithTrustedProxies is set, headers are honored only for requests coming
// from those networks, so clients cannot spoof their address.
//
//	res := clientip.NewResolver(clientip.WithTrustedProxies("10.0.0.0/8"))
//	r.Use(clientip.Middleware(res))
//
//	ip := clientip.FromContext(ctx)
package clientip
