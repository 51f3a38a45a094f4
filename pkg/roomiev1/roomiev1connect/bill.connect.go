package roomiev1connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

// BillServiceHandler is implemented by the server side of roomie.v1.BillService.
type BillServiceHandler interface {
	CreateBill(context.Context, *connect.Request[roomiev1.CreateBillRequest]) (*connect.Response[roomiev1.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[roomiev1.GetBillRequest]) (*connect.Response[roomiev1.GetBillResponse], error)
	ListBills(context.Context, *connect.Request[roomiev1.ListBillsRequest]) (*connect.Response[roomiev1.ListBillsResponse], error)
	ToggleSettled(context.Context, *connect.Request[roomiev1.ToggleSettledRequest]) (*connect.Response[roomiev1.ToggleSettledResponse], error)
	DeleteBill(context.Context, *connect.Request[roomiev1.DeleteBillRequest]) (*connect.Response[roomiev1.DeleteBillResponse], error)
	AddComment(context.Context, *connect.Request[roomiev1.AddCommentRequest]) (*connect.Response[roomiev1.AddCommentResponse], error)
	GetBalance(context.Context, *connect.Request[roomiev1.GetBalanceRequest]) (*connect.Response[roomiev1.GetBalanceResponse], error)
	GetHouseholdBalances(context.Context, *connect.Request[roomiev1.GetHouseholdBalancesRequest]) (*connect.Response[roomiev1.GetHouseholdBalancesResponse], error)
}

// NewBillServiceHandler builds an HTTP handler for the service and returns
// the path prefix to mount it on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, BillServiceCreateBillProcedure, svc.CreateBill, opts)
	handle(mux, BillServiceGetBillProcedure, svc.GetBill, opts)
	handle(mux, BillServiceListBillsProcedure, svc.ListBills, opts)
	handle(mux, BillServiceToggleSettledProcedure, svc.ToggleSettled, opts)
	handle(mux, BillServiceDeleteBillProcedure, svc.DeleteBill, opts)
	handle(mux, BillServiceAddCommentProcedure, svc.AddComment, opts)
	handle(mux, BillServiceGetBalanceProcedure, svc.GetBalance, opts)
	handle(mux, BillServiceGetHouseholdBalancesProcedure, svc.GetHouseholdBalances, opts)
	return "/" + BillServiceName + "/", mux
}

// BillServiceClient calls roomie.v1.BillService.
type BillServiceClient struct {
	createBill           *connect.Client[roomiev1.CreateBillRequest, roomiev1.CreateBillResponse]
	getBill              *connect.Client[roomiev1.GetBillRequest, roomiev1.GetBillResponse]
	listBills            *connect.Client[roomiev1.ListBillsRequest, roomiev1.ListBillsResponse]
	toggleSettled        *connect.Client[roomiev1.ToggleSettledRequest, roomiev1.ToggleSettledResponse]
	deleteBill           *connect.Client[roomiev1.DeleteBillRequest, roomiev1.DeleteBillResponse]
	addComment           *connect.Client[roomiev1.AddCommentRequest, roomiev1.AddCommentResponse]
	getBalance           *connect.Client[roomiev1.GetBalanceRequest, roomiev1.GetBalanceResponse]
	getHouseholdBalances *connect.Client[roomiev1.GetHouseholdBalancesRequest, roomiev1.GetHouseholdBalancesResponse]
}

func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	opts = clientOptions(opts)
	return &BillServiceClient{
		createBill:           newClient[roomiev1.CreateBillRequest, roomiev1.CreateBillResponse](httpClient, baseURL, BillServiceCreateBillProcedure, opts),
		getBill:              newClient[roomiev1.GetBillRequest, roomiev1.GetBillResponse](httpClient, baseURL, BillServiceGetBillProcedure, opts),
		listBills:            newClient[roomiev1.ListBillsRequest, roomiev1.ListBillsResponse](httpClient, baseURL, BillServiceListBillsProcedure, opts),
		toggleSettled:        newClient[roomiev1.ToggleSettledRequest, roomiev1.ToggleSettledResponse](httpClient, baseURL, BillServiceToggleSettledProcedure, opts),
		deleteBill:           newClient[roomiev1.DeleteBillRequest, roomiev1.DeleteBillResponse](httpClient, baseURL, BillServiceDeleteBillProcedure, opts),
		addComment:           newClient[roomiev1.AddCommentRequest, roomiev1.AddCommentResponse](httpClient, baseURL, BillServiceAddCommentProcedure, opts),
		getBalance:           newClient[roomiev1.GetBalanceRequest, roomiev1.GetBalanceResponse](httpClient, baseURL, BillServiceGetBalanceProcedure, opts),
		getHouseholdBalances: newClient[roomiev1.GetHouseholdBalancesRequest, roomiev1.GetHouseholdBalancesResponse](httpClient, baseURL, BillServiceGetHouseholdBalancesProcedure, opts),
	}
}

func (c *BillServiceClient) CreateBill(ctx context.Context, req *connect.Request[roomiev1.CreateBillRequest]) (*connect.Response[roomiev1.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetBill(ctx context.Context, req *connect.Request[roomiev1.GetBillRequest]) (*connect.Response[roomiev1.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) ListBills(ctx context.Context, req *connect.Request[roomiev1.ListBillsRequest]) (*connect.Response[roomiev1.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *BillServiceClient) ToggleSettled(ctx context.Context, req *connect.Request[roomiev1.ToggleSettledRequest]) (*connect.Response[roomiev1.ToggleSettledResponse], error) {
	return c.toggleSettled.CallUnary(ctx, req)
}

func (c *BillServiceClient) DeleteBill(ctx context.Context, req *connect.Request[roomiev1.DeleteBillRequest]) (*connect.Response[roomiev1.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) AddComment(ctx context.Context, req *connect.Request[roomiev1.AddCommentRequest]) (*connect.Response[roomiev1.AddCommentResponse], error) {
	return c.addComment.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetBalance(ctx context.Context, req *connect.Request[roomiev1.GetBalanceRequest]) (*connect.Response[roomiev1.GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetHouseholdBalances(ctx context.Context, req *connect.Request[roomiev1.GetHouseholdBalancesRequest]) (*connect.Response[roomiev1.GetHouseholdBalancesResponse], error) {
	return c.getHouseholdBalances.CallUnary(ctx, req)
}
