package catalog

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	grpcServiceName   = "ProtoDefinitions.MoviesApi"
	grpcMethodGetById = "/" + grpcServiceName + "/GetById"
	grpcMethodGetAll  = "/" + grpcServiceName + "/GetAll"
	grpcMethodSearch  = "/" + grpcServiceName + "/Search"
)

// GRPCClient talks to the catalog gRPC API. Requests and response envelopes are
// google.protobuf.Struct messages; the envelope carries a success flag and a data object.
type GRPCClient struct {
	conn *grpc.ClientConn
}

type grpcOptions struct {
	caFile    string
	plaintext bool
	dialOpts  []grpc.DialOption
}

type GRPCOption func(*grpcOptions)

// WithCAFile sets the PEM bundle used to verify the catalog server certificate.
// The system pool is used when path is empty.
func WithCAFile(path string) GRPCOption {
	return func(o *grpcOptions) {
		o.caFile = path
	}
}

func withPlaintext() GRPCOption {
	return func(o *grpcOptions) {
		o.plaintext = true
	}
}

func withDialOptions(opts ...grpc.DialOption) GRPCOption {
	return func(o *grpcOptions) {
		o.dialOpts = append(o.dialOpts, opts...)
	}
}

func NewGRPCClient(target, apiKey string, opts ...GRPCOption) (*GRPCClient, error) {
	var options grpcOptions
	for _, opt := range opts {
		opt(&options)
	}

	var creds credentials.TransportCredentials
	if options.plaintext {
		creds = insecure.NewCredentials()
	} else {
		tlsCreds, err := newTLSCredentials(options.caFile)
		if err != nil {
			return nil, err
		}
		creds = tlsCreds
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(apiKeyCredentials{key: apiKey, requireTLS: !options.plaintext}),
	}
	dialOpts = append(dialOpts, options.dialOpts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog gRPC client: %w", err)
	}

	return &GRPCClient{conn: conn}, nil
}

func newTLSCredentials(caFile string) (credentials.TransportCredentials, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if caFile != "" {
		pem, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog CA file: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", caFile)
		}

		tlsConfig.RootCAs = pool
	}

	return credentials.NewTLS(tlsConfig), nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) FetchById(ctx context.Context, id string) (*domain.CatalogMovie, error) {
	data, err := c.invoke(ctx, grpcMethodGetById, map[string]any{"id": id})
	if err != nil {
		return nil, &TransportError{Op: "GetById", Err: err}
	}

	var movie domain.CatalogMovie
	if err = decodeStruct(data, &movie); err != nil {
		return nil, &TransportError{Op: "GetById", Err: err}
	}

	if movie.ID == "" {
		return nil, &TransportError{Op: "GetById", Err: errEmptyMovie}
	}

	return &movie, nil
}

func (c *GRPCClient) Search(ctx context.Context, text string) (*domain.CatalogMovie, error) {
	data, err := c.invoke(ctx, grpcMethodSearch, map[string]any{"text": text})
	if err != nil {
		return nil, &TransportError{Op: "Search", Err: err}
	}

	var movie domain.CatalogMovie
	if err = decodeStruct(data, &movie); err != nil {
		return nil, &TransportError{Op: "Search", Err: err}
	}

	if movie.ID == "" {
		return nil, &TransportError{Op: "Search", Err: errEmptyMovie}
	}

	return &movie, nil
}

func (c *GRPCClient) GetAll(ctx context.Context) ([]domain.CatalogMovie, error) {
	data, err := c.invoke(ctx, grpcMethodGetAll, map[string]any{})
	if err != nil {
		return nil, &TransportError{Op: "GetAll", Err: err}
	}

	var list struct {
		Shows []domain.CatalogMovie `json:"shows"`
	}
	if err = decodeStruct(data, &list); err != nil {
		return nil, &TransportError{Op: "GetAll", Err: err}
	}

	shows := list.Shows[:0]
	for _, movie := range list.Shows {
		if movie.ID != "" {
			shows = append(shows, movie)
		}
	}

	return shows, nil
}

// invoke sends the request and unwraps the response envelope. An envelope with
// success=false is a failure even though the call itself succeeded.
func (c *GRPCClient) invoke(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	resp := new(structpb.Struct)

	err = c.conn.Invoke(ctx, method, req, resp)
	if err != nil {
		return nil, err
	}

	if !resp.GetFields()["success"].GetBoolValue() {
		return nil, errors.New("catalog responded with success=false")
	}

	data := resp.GetFields()["data"].GetStructValue()
	if data == nil {
		return nil, errors.New("catalog response has no data")
	}

	return data, nil
}

func decodeStruct(data *structpb.Struct, dst any) error {
	raw, err := json.Marshal(data.AsMap())
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dst)
}

// apiKeyCredentials attaches the API key to the metadata of every call.
type apiKeyCredentials struct {
	key        string
	requireTLS bool
}

func (c apiKeyCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{strings.ToLower(apiKeyHeader): c.key}, nil
}

func (c apiKeyCredentials) RequireTransportSecurity() bool {
	return c.requireTLS
}
