package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/pkg/api"
)

// ProfileServiceName is the fully-qualified name of the ProfileService service.
const ProfileServiceName = "fintrack.v1.ProfileService"

var (
	ProfileServiceGetProfileProcedure    = procedure(ProfileServiceName, "GetProfile")
	ProfileServiceUpdateProfileProcedure = procedure(ProfileServiceName, "UpdateProfile")
)

// ProfileServiceHandler is implemented by the server side of ProfileService.
type ProfileServiceHandler interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewProfileServiceHandler builds an HTTP handler from the service implementation.
func NewProfileServiceHandler(svc ProfileServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(ProfileServiceName, map[string]http.Handler{
		ProfileServiceGetProfileProcedure:    connect.NewUnaryHandler(ProfileServiceGetProfileProcedure, svc.GetProfile, opts...),
		ProfileServiceUpdateProfileProcedure: connect.NewUnaryHandler(ProfileServiceUpdateProfileProcedure, svc.UpdateProfile, opts...),
	})
}

// ProfileServiceClient is a client for the ProfileService service.
type ProfileServiceClient interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewProfileServiceClient constructs a client for the ProfileService service.
func NewProfileServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ProfileServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &profileServiceClient{
		getProfile:    connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](httpClient, baseURL+ProfileServiceGetProfileProcedure, opts...),
		updateProfile: connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL+ProfileServiceUpdateProfileProcedure, opts...),
	}
}

type profileServiceClient struct {
	getProfile    *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	updateProfile *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
}

func (c *profileServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *profileServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// AdminServiceName is the fully-qualified name of the AdminService service.
const AdminServiceName = "fintrack.v1.AdminService"

var (
	AdminServiceReconcileAccountProcedure = procedure(AdminServiceName, "ReconcileAccount")
)

// AdminServiceHandler is implemented by the server side of AdminService.
type AdminServiceHandler interface {
	ReconcileAccount(context.Context, *connect.Request[api.ReconcileAccountRequest]) (*connect.Response[api.ReconcileAccountResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service implementation.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AdminServiceName, map[string]http.Handler{
		AdminServiceReconcileAccountProcedure: connect.NewUnaryHandler(AdminServiceReconcileAccountProcedure, svc.ReconcileAccount, opts...),
	})
}

// AdminServiceClient is a client for the AdminService service.
type AdminServiceClient interface {
	ReconcileAccount(context.Context, *connect.Request[api.ReconcileAccountRequest]) (*connect.Response[api.ReconcileAccountResponse], error)
}

// NewAdminServiceClient constructs a client for the AdminService service.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &adminServiceClient{
		reconcileAccount: connect.NewClient[api.ReconcileAccountRequest, api.ReconcileAccountResponse](httpClient, baseURL+AdminServiceReconcileAccountProcedure, opts...),
	}
}

type adminServiceClient struct {
	reconcileAccount *connect.Client[api.ReconcileAccountRequest, api.ReconcileAccountResponse]
}

func (c *adminServiceClient) ReconcileAccount(ctx context.Context, req *connect.Request[api.ReconcileAccountRequest]) (*connect.Response[api.ReconcileAccountResponse], error) {
	return c.reconcileAccount.CallUnary(ctx, req)
}
