// Package oauth exchanges a provider authorization code for a normalized
// federated profile.
//
// The GitHub provider is the only implementation; the Provider interface
// exists so the gateway and its tests never see golang.org/x/oauth2
// directly. All failures map onto three tagged errors — provider
// unreachable, grant rejected, profile unusable — which is the whole
// vocabulary the callback orchestration needs.
package oauth
