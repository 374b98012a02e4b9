package datasources

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/pkg/httpclient"
	"github.com/valyala/fasthttp"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Id      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return e.Message
}

type rpcResponse struct {
	Id     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call invokes a JSON-RPC 2.0 method and decodes its result into out.
func (d *OPIDatasource) call(ctx context.Context, method string, params []any, out any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Id:      d.requestId.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrapf(err, "can't marshal %s request", method)
	}

	resp, err := d.client.Post(ctx, "", httpclient.RequestOptions{Body: body})
	if err != nil {
		return errors.Wrapf(err, "can't call %s", method)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return errors.Errorf("%s: unexpected status code %d, %q", method, resp.StatusCode(), string(resp.Body()))
	}

	var rpcResp rpcResponse
	if err := resp.UnmarshalBody(&rpcResp); err != nil {
		return errors.Wrapf(err, "can't decode %s response", method)
	}
	if rpcResp.Error != nil {
		return errors.Wrapf(rpcResp.Error, "%s failed with code %d", method, rpcResp.Error.Code)
	}
	if len(rpcResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return errors.Wrapf(err, "can't decode %s result", method)
	}
	return nil
}
