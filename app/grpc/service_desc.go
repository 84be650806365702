package grpc

import (
	"context"

	"github.com/vibast-solutions/ms-go-services/app/types"
	"google.golang.org/grpc"
)

const BillingServiceName = "services.v1.BillingService"

type BillingServiceServer interface {
	GetService(ctx context.Context, req *types.IDRequest) (*types.ServiceResponse, error)
	GetPlan(ctx context.Context, req *types.IDRequest) (*types.PlanResponse, error)
	GetSubscription(ctx context.Context, req *types.IDRequest) (*types.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context, req *types.ListSubscriptionsRequest) (*types.ListSubscriptionsResponse, error)
	GetTotalSum(ctx context.Context, req *types.TotalSumRequest) (*types.TotalSumResponse, error)
	RecomputeSubscription(ctx context.Context, req *types.IDRequest) (*types.MessageResponse, error)
}

var BillingServiceDesc = grpc.ServiceDesc{
	ServiceName: BillingServiceName,
	HandlerType: (*BillingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetService",
			Handler: unaryHandler("GetService", func(srv BillingServiceServer, ctx context.Context, req *types.IDRequest) (interface{}, error) {
				return srv.GetService(ctx, req)
			}),
		},
		{
			MethodName: "GetPlan",
			Handler: unaryHandler("GetPlan", func(srv BillingServiceServer, ctx context.Context, req *types.IDRequest) (interface{}, error) {
				return srv.GetPlan(ctx, req)
			}),
		},
		{
			MethodName: "GetSubscription",
			Handler: unaryHandler("GetSubscription", func(srv BillingServiceServer, ctx context.Context, req *types.IDRequest) (interface{}, error) {
				return srv.GetSubscription(ctx, req)
			}),
		},
		{
			MethodName: "ListSubscriptions",
			Handler: unaryHandler("ListSubscriptions", func(srv BillingServiceServer, ctx context.Context, req *types.ListSubscriptionsRequest) (interface{}, error) {
				return srv.ListSubscriptions(ctx, req)
			}),
		},
		{
			MethodName: "GetTotalSum",
			Handler: unaryHandler("GetTotalSum", func(srv BillingServiceServer, ctx context.Context, req *types.TotalSumRequest) (interface{}, error) {
				return srv.GetTotalSum(ctx, req)
			}),
		},
		{
			MethodName: "RecomputeSubscription",
			Handler: unaryHandler("RecomputeSubscription", func(srv BillingServiceServer, ctx context.Context, req *types.IDRequest) (interface{}, error) {
				return srv.RecomputeSubscription(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterBillingServiceServer(s grpc.ServiceRegistrar, srv BillingServiceServer) {
	s.RegisterService(&BillingServiceDesc, srv)
}

// unaryHandler decodes the request into Req and runs call through the server's
// interceptor chain.
func unaryHandler[Req any](method string, call func(BillingServiceServer, context.Context, *Req) (interface{}, error)) grpc.MethodHandler {
	fullMethod := "/" + BillingServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BillingServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(BillingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BillingServiceClient calls BillingService with the JSON codec.
type BillingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBillingServiceClient(cc grpc.ClientConnInterface) *BillingServiceClient {
	return &BillingServiceClient{cc: cc}
}

func (c *BillingServiceClient) GetService(ctx context.Context, in *types.IDRequest, opts ...grpc.CallOption) (*types.ServiceResponse, error) {
	out := new(types.ServiceResponse)
	return out, c.invoke(ctx, "GetService", in, out, opts)
}

func (c *BillingServiceClient) GetPlan(ctx context.Context, in *types.IDRequest, opts ...grpc.CallOption) (*types.PlanResponse, error) {
	out := new(types.PlanResponse)
	return out, c.invoke(ctx, "GetPlan", in, out, opts)
}

func (c *BillingServiceClient) GetSubscription(ctx context.Context, in *types.IDRequest, opts ...grpc.CallOption) (*types.SubscriptionResponse, error) {
	out := new(types.SubscriptionResponse)
	return out, c.invoke(ctx, "GetSubscription", in, out, opts)
}

func (c *BillingServiceClient) ListSubscriptions(ctx context.Context, in *types.ListSubscriptionsRequest, opts ...grpc.CallOption) (*types.ListSubscriptionsResponse, error) {
	out := new(types.ListSubscriptionsResponse)
	return out, c.invoke(ctx, "ListSubscriptions", in, out, opts)
}

func (c *BillingServiceClient) GetTotalSum(ctx context.Context, in *types.TotalSumRequest, opts ...grpc.CallOption) (*types.TotalSumResponse, error) {
	out := new(types.TotalSumResponse)
	return out, c.invoke(ctx, "GetTotalSum", in, out, opts)
}

func (c *BillingServiceClient) RecomputeSubscription(ctx context.Context, in *types.IDRequest, opts ...grpc.CallOption) (*types.MessageResponse, error) {
	out := new(types.MessageResponse)
	return out, c.invoke(ctx, "RecomputeSubscription", in, out, opts)
}

func (c *BillingServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+BillingServiceName+"/"+method, in, out, opts...)
}
