package solana_client

import (
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// Init solana client，整个进程共享同一个 client 及其连接池
func Init(rawUrl string, timeout time.Duration) *rpc.Client {
	if timeout <= 0 {
		return rpc.New(rawUrl)
	}
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 64,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return rpc.NewWithCustomRPCClient(jsonrpc.NewClientWithOpts(rawUrl, &jsonrpc.RPCClientOpts{
		HTTPClient: httpClient,
	}))
}
