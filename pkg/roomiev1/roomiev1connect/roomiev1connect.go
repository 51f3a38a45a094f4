// Package roomiev1connect wires the roomie.v1 services to Connect handlers
// and clients using the JSON codec from package roomiev1.
package roomiev1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

const (
	BillServiceName     = "roomie.v1.BillService"
	RosterServiceName   = "roomie.v1.RosterService"
	ActivityServiceName = "roomie.v1.ActivityService"
)

// Procedure paths.
const (
	BillServiceCreateBillProcedure           = "/roomie.v1.BillService/CreateBill"
	BillServiceGetBillProcedure              = "/roomie.v1.BillService/GetBill"
	BillServiceListBillsProcedure            = "/roomie.v1.BillService/ListBills"
	BillServiceToggleSettledProcedure        = "/roomie.v1.BillService/ToggleSettled"
	BillServiceDeleteBillProcedure           = "/roomie.v1.BillService/DeleteBill"
	BillServiceAddCommentProcedure           = "/roomie.v1.BillService/AddComment"
	BillServiceGetBalanceProcedure           = "/roomie.v1.BillService/GetBalance"
	BillServiceGetHouseholdBalancesProcedure = "/roomie.v1.BillService/GetHouseholdBalances"

	RosterServiceListRoommatesProcedure = "/roomie.v1.RosterService/ListRoommates"
	RosterServiceGetRoommateProcedure   = "/roomie.v1.RosterService/GetRoommate"
	RosterServiceUpsertProfileProcedure = "/roomie.v1.RosterService/UpsertProfile"

	ActivityServiceListActivityProcedure     = "/roomie.v1.ActivityService/ListActivity"
	ActivityServiceMarkActivityReadProcedure = "/roomie.v1.ActivityService/MarkActivityRead"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(roomiev1.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(roomiev1.Codec{})}, opts...)
}

func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
