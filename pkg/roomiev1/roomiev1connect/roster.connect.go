package roomiev1connect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/roomieboard/pkg/roomiev1"
)

// RosterServiceHandler is implemented by the server side of roomie.v1.RosterService.
type RosterServiceHandler interface {
	ListRoommates(context.Context, *connect.Request[roomiev1.ListRoommatesRequest]) (*connect.Response[roomiev1.ListRoommatesResponse], error)
	GetRoommate(context.Context, *connect.Request[roomiev1.GetRoommateRequest]) (*connect.Response[roomiev1.GetRoommateResponse], error)
	UpsertProfile(context.Context, *connect.Request[roomiev1.UpsertProfileRequest]) (*connect.Response[roomiev1.UpsertProfileResponse], error)
}

func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, RosterServiceListRoommatesProcedure, svc.ListRoommates, opts)
	handle(mux, RosterServiceGetRoommateProcedure, svc.GetRoommate, opts)
	handle(mux, RosterServiceUpsertProfileProcedure, svc.UpsertProfile, opts)
	return "/" + RosterServiceName + "/", mux
}

// RosterServiceClient calls roomie.v1.RosterService.
type RosterServiceClient struct {
	listRoommates *connect.Client[roomiev1.ListRoommatesRequest, roomiev1.ListRoommatesResponse]
	getRoommate   *connect.Client[roomiev1.GetRoommateRequest, roomiev1.GetRoommateResponse]
	upsertProfile *connect.Client[roomiev1.UpsertProfileRequest, roomiev1.UpsertProfileResponse]
}

func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RosterServiceClient {
	opts = clientOptions(opts)
	return &RosterServiceClient{
		listRoommates: newClient[roomiev1.ListRoommatesRequest, roomiev1.ListRoommatesResponse](httpClient, baseURL, RosterServiceListRoommatesProcedure, opts),
		getRoommate:   newClient[roomiev1.GetRoommateRequest, roomiev1.GetRoommateResponse](httpClient, baseURL, RosterServiceGetRoommateProcedure, opts),
		upsertProfile: newClient[roomiev1.UpsertProfileRequest, roomiev1.UpsertProfileResponse](httpClient, baseURL, RosterServiceUpsertProfileProcedure, opts),
	}
}

func (c *RosterServiceClient) ListRoommates(ctx context.Context, req *connect.Request[roomiev1.ListRoommatesRequest]) (*connect.Response[roomiev1.ListRoommatesResponse], error) {
	return c.listRoommates.CallUnary(ctx, req)
}

func (c *RosterServiceClient) GetRoommate(ctx context.Context, req *connect.Request[roomiev1.GetRoommateRequest]) (*connect.Response[roomiev1.GetRoommateResponse], error) {
	return c.getRoommate.CallUnary(ctx, req)
}

func (c *RosterServiceClient) UpsertProfile(ctx context.Context, req *connect.Request[roomiev1.UpsertProfileRequest]) (*connect.Response[roomiev1.UpsertProfileResponse], error) {
	return c.upsertProfile.CallUnary(ctx, req)
}
