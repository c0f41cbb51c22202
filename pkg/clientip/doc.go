// Package clientip resolves the real client address, scheme and host of HTTP
// requests that may have passed through reverse proxies.
//
// Forwarding headers are only honored when the direct peer (RemoteAddr) belongs
// to a configured set of trusted proxies. Requests from untrusted peers are
// answered from the connection itself, so a client cannot spoof its address or
// force a scheme by sending X-Forwarded-* headers.
//
// # Usage
//
//	trust, err := clientip.ParseTrust([]string{"10.0.0.0/8", "192.168.1.10"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ip := trust.IP(r)         // X-Forwarded-For walked right-to-left, skipping proxies
//	scheme := trust.Scheme(r) // "https" when TLS or X-Forwarded-Proto from a trusted proxy
//	host := trust.Host(r)     // X-Forwarded-Host from a trusted proxy, else r.Host
//
// An empty Trust honors no headers at all:
//
//	ip := clientip.GetIP(r) // equivalent to Trust{}.IP(r)
//
// # Header Handling
//
// X-Forwarded-For may contain several hops ("client, proxy1, proxy2"). The
// rightmost entries are appended by the proxies closest to the server, so the
// list is walked from the right and the first address that is not itself a
// trusted proxy is the client. X-Real-IP is used when X-Forwarded-For is absent.
package clientip
