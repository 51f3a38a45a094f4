package roomiev1connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

// ActivityServiceHandler is implemented by the server side of roomie.v1.ActivityService.
type ActivityServiceHandler interface {
	ListActivity(context.Context, *connect.Request[roomiev1.ListActivityRequest]) (*connect.Response[roomiev1.ListActivityResponse], error)
	MarkActivityRead(context.Context, *connect.Request[roomiev1.MarkActivityReadRequest]) (*connect.Response[roomiev1.MarkActivityReadResponse], error)
}

func NewActivityServiceHandler(svc ActivityServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, ActivityServiceListActivityProcedure, svc.ListActivity, opts)
	handle(mux, ActivityServiceMarkActivityReadProcedure, svc.MarkActivityRead, opts)
	return "/" + ActivityServiceName + "/", mux
}

// ActivityServiceClient calls roomie.v1.ActivityService.
type ActivityServiceClient struct {
	listActivity     *connect.Client[roomiev1.ListActivityRequest, roomiev1.ListActivityResponse]
	markActivityRead *connect.Client[roomiev1.MarkActivityReadRequest, roomiev1.MarkActivityReadResponse]
}

func NewActivityServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ActivityServiceClient {
	opts = clientOptions(opts)
	return &ActivityServiceClient{
		listActivity:     newClient[roomiev1.ListActivityRequest, roomiev1.ListActivityResponse](httpClient, baseURL, ActivityServiceListActivityProcedure, opts),
		markActivityRead: newClient[roomiev1.MarkActivityReadRequest, roomiev1.MarkActivityReadResponse](httpClient, baseURL, ActivityServiceMarkActivityReadProcedure, opts),
	}
}

func (c *ActivityServiceClient) ListActivity(ctx context.Context, req *connect.Request[roomiev1.ListActivityRequest]) (*connect.Response[roomiev1.ListActivityResponse], error) {
	return c.listActivity.CallUnary(ctx, req)
}

func (c *ActivityServiceClient) MarkActivityRead(ctx context.Context, req *connect.Request[roomiev1.MarkActivityReadRequest]) (*connect.Response[roomiev1.MarkActivityReadResponse], error) {
	return c.markActivityRead.CallUnary(ctx, req)
}
