// Package poddiscovery is the client for the pod-discovery facility spec
// §4.9 describes: it returns the addresses of peer pods in the same
// deployment, excluding this pod's own address. Rather than pulling in
// k8s.io/client-go for a single endpoint lookup, this follows the
// teacher's keycloak resolver's own "plain REST client against an admin
// API, bearer token from disk" shape — here pointed at the in-cluster
// Kubernetes API server's Endpoints resource, using the pod's own
// service-account token. Outside a Kubernetes environment no service-account
// token is found and Client.Peers returns an empty list
// (spec §4.9: "When it is unavailable ... the list is empty").
package poddiscovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	tokenPath = "/var/run/secrets/kubernetes.io/serviceaccount/token"
	caPath    = "/var/run/secrets/kubernetes.io/serviceaccount/ca.crt"

	// inClusterAPIServerURL is the Kubernetes-injected Service DNS name
	// every in-cluster pod can resolve, per the standard
	// kubernetes.default.svc convention.
	inClusterAPIServerURL = "https://kubernetes.default.svc"
)

// Client looks up sibling pod addresses via the Kubernetes API server.
// A zero-value Client (APIServerURL == "") is a valid "unavailable"
// client: Peers always returns an empty slice without error.
type Client struct {
	APIServerURL   string
	Namespace      string
	ServiceName    string
	SelfAddr       string
	httpClient     *http.Client
	token          string
}

// New builds a Client from the in-cluster environment. If the service
// account token is not present (non-orchestrated environment), it returns
// a Client whose Peers method always reports an empty list, matching spec
// §4.9's "non-orchestrated environment" fallback.
func New(namespace, serviceName, selfAddr string) *Client {
	token, _ := os.ReadFile(tokenPath)
	return &Client{
		APIServerURL: inClusterAPIServerURL,
		Namespace:    namespace,
		ServiceName:  serviceName,
		SelfAddr:     selfAddr,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		token:        string(token),
	}
}

type endpointsResponse struct {
	Subsets []struct {
		Addresses []struct {
			IP string `json:"ip"`
		} `json:"addresses"`
	} `json:"subsets"`
}

// Peers returns every peer pod address in the deployment's Endpoints
// object, excluding this pod's own address. Any failure to reach the API
// server (no token, network error, non-2xx) degrades to an empty list
// rather than an error, since broadcast fan-out treats peer discovery as
// best-effort.
func (c *Client) Peers(ctx context.Context) []string {
	if c.token == "" || c.APIServerURL == "" {
		return nil
	}

	url := fmt.Sprintf("%s/api/v1/namespaces/%s/endpoints/%s", c.APIServerURL, c.Namespace, c.ServiceName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var out endpointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}

	var peers []string
	for _, subset := range out.Subsets {
		for _, addr := range subset.Addresses {
			if addr.IP != "" && addr.IP != c.SelfAddr {
				peers = append(peers, addr.IP)
			}
		}
	}
	return peers
}
