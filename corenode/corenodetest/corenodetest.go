// Package corenodetest provides an in-memory identity-directory service that
// enforces the same signature rules as the real one. It serves the binary
// protocol over HTTP and through a loopback poster.
package corenodetest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/anyproto/any-share/corenode/corenodeclient"
	"github.com/anyproto/any-share/corenode/corenodeproto"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/staticdata"
)

type user struct {
	name       string
	pub        identity.PublicIdentity
	staticData []byte
}

type Service struct {
	mu      sync.Mutex
	byName  map[string]*user
	byKeys  map[identity.PublicIdentity]*user
	sharing map[identity.PublicIdentity][][]byte
	inbox   map[identity.PublicIdentity][][]byte
	status  map[string]int
	reject  map[string]bool
	calls   map[string]int
}

func New() *Service {
	return &Service{
		byName:  map[string]*user{},
		byKeys:  map[identity.PublicIdentity]*user{},
		sharing: map[identity.PublicIdentity][][]byte{},
		inbox:   map[identity.PublicIdentity][][]byte{},
		status:  map[string]int{},
		reject:  map[string]bool{},
		calls:   map[string]int{},
	}
}

// Client returns a real client talking to s without a network.
func (s *Service) Client() corenodeclient.CorenodeClient {
	return corenodeclient.NewWithPoster(s.Poster())
}

// Poster returns a loopback poster.
func (s *Service) Poster() httpposter.Poster {
	return loopback{s}
}

// SetStatus makes every call of method fail with the given HTTP status.
// Zero clears it.
func (s *Service) SetStatus(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.status, method)
	} else {
		s.status[method] = status
	}
}

// SetReject makes a mutating method answer false without applying it.
func (s *Service) SetReject(method string, reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reject[method] = reject
}

// Calls returns how many times method was served.
func (s *Service) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// StaticData returns the accepted directory of username.
func (s *Service) StaticData(username string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byName[username]
	if !ok {
		return nil, false
	}
	return bytes.Clone(u.staticData), true
}

// SharingKeys returns the authorized writer keys of owner.
func (s *Service) SharingKeys(owner identity.PublicIdentity) [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.sharing[owner])
}

// Inbox returns the pending envelopes of target.
func (s *Service) Inbox(target identity.PublicIdentity) [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.inbox[target])
}

// AuthorizeSharingKey records a writer key without a signature check, to
// simulate state left behind by an interrupted flow.
func (s *Service) AuthorizeSharingKey(owner identity.PublicIdentity, writerPublicKeys []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sharing[owner] = append(s.sharing[owner], bytes.Clone(writerPublicKeys))
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, corenodeproto.MaxStaticDataSize*2))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	resp, status, code := s.Handle(strings.TrimPrefix(r.URL.Path, "/"), body)
	if code != 0 {
		w.Header().Set(httpposter.ErrorCodeHeader, strconv.FormatUint(code, 10))
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(status)
	_, _ = w.Write(resp)
}

// Handle serves one request and returns the response body, the HTTP status
// and the registered error code, if any.
func (s *Service) Handle(method string, body []byte) (resp []byte, status int, code uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	if st, ok := s.status[method]; ok {
		return nil, st, 0
	}
	h, ok := s.handlers()[method]
	if !ok {
		return nil, http.StatusNotFound, 0
	}
	if s.reject[method] {
		msg, _ := rejected()
		return corenodeproto.Marshal(msg), http.StatusOK, 0
	}
	msg, err := h(body)
	if err != nil {
		switch {
		case errors.Is(err, corenodeproto.ErrUnknownUser), errors.Is(err, corenodeproto.ErrUnknownOwner):
			status = http.StatusNotFound
		case errors.Is(err, corenodeproto.ErrBadRequest):
			status = http.StatusBadRequest
		default:
			status = http.StatusInternalServerError
		}
		return nil, status, rpcerr.Code(err)
	}
	return corenodeproto.Marshal(msg), http.StatusOK, 0
}

type handler func(body []byte) (corenodeproto.Message, error)

func decode[T any, PT interface {
	*T
	corenodeproto.Message
}](body []byte, f func(req PT) (corenodeproto.Message, error)) (corenodeproto.Message, error) {
	req := PT(new(T))
	if err := corenodeproto.Unmarshal(body, req); err != nil {
		return nil, corenodeproto.ErrBadRequest
	}
	return f(req)
}

func (s *Service) handlers() map[string]handler {
	return map[string]handler{
		corenodeproto.MethodGetPublicKey: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.getPublicKey)
		},
		corenodeproto.MethodGetUsername: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.getUsername)
		},
		corenodeproto.MethodAddUsername: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.addUsername)
		},
		corenodeproto.MethodUpdateStaticData: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.updateStaticData)
		},
		corenodeproto.MethodGetStaticData: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.getStaticData)
		},
		corenodeproto.MethodAllowSharingKey: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.allowSharingKey)
		},
		corenodeproto.MethodBanSharingKey: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.banSharingKey)
		},
		corenodeproto.MethodGetSharingKeys: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.getSharingKeys)
		},
		corenodeproto.MethodFollowRequest: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.followRequest)
		},
		corenodeproto.MethodGetFollowRequests: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.getFollowRequests)
		},
		corenodeproto.MethodRemoveFollowRequest: func(b []byte) (corenodeproto.Message, error) {
			return decode(b, s.removeFollowRequest)
		},
	}
}

func rejected() (corenodeproto.Message, error) {
	return &corenodeproto.BoolResponse{Ok: false}, nil
}

func accepted() (corenodeproto.Message, error) {
	return &corenodeproto.BoolResponse{Ok: true}, nil
}

func (s *Service) getPublicKey(req *corenodeproto.GetPublicKeyRequest) (corenodeproto.Message, error) {
	u, ok := s.byName[req.Username]
	if !ok {
		return &corenodeproto.GetPublicKeyResponse{}, nil
	}
	return &corenodeproto.GetPublicKeyResponse{Found: true, PublicKeys: u.pub.PublicKeys()}, nil
}

func (s *Service) getUsername(req *corenodeproto.GetUsernameRequest) (corenodeproto.Message, error) {
	pub, err := identity.FromPublicKeys(req.PublicKeys)
	if err != nil {
		return nil, corenodeproto.ErrBadRequest
	}
	if u, ok := s.byKeys[pub]; ok {
		return &corenodeproto.GetUsernameResponse{Username: u.name}, nil
	}
	return &corenodeproto.GetUsernameResponse{}, nil
}

// verifyDirectory checks signed against pub and the exact registration
// payload, and that staticData is a well-formed directory.
func verifyDirectory(username string, pub identity.PublicIdentity, signed, staticData []byte) bool {
	payload, err := pub.Unsign(signed)
	if err != nil {
		return false
	}
	if !bytes.Equal(payload, staticdata.RegistrationPayload(username, pub, staticData)) {
		return false
	}
	_, err = staticdata.Deserialize(staticData)
	return err == nil
}

func (s *Service) addUsername(req *corenodeproto.AddUsernameRequest) (corenodeproto.Message, error) {
	if req.Username == "" {
		return rejected()
	}
	pub, err := identity.FromPublicKeys(req.PublicKeys)
	if err != nil {
		return rejected()
	}
	if _, taken := s.byName[req.Username]; taken {
		return rejected()
	}
	if _, taken := s.byKeys[pub]; taken {
		return rejected()
	}
	if !verifyDirectory(req.Username, pub, req.Signed, req.StaticData) {
		return rejected()
	}
	u := &user{name: req.Username, pub: pub, staticData: bytes.Clone(req.StaticData)}
	s.byName[u.name] = u
	s.byKeys[pub] = u
	return accepted()
}

func (s *Service) updateStaticData(req *corenodeproto.UpdateStaticDataRequest) (corenodeproto.Message, error) {
	u, ok := s.byName[req.Username]
	if !ok {
		return rejected()
	}
	if !verifyDirectory(u.name, u.pub, req.Signed, req.StaticData) {
		return rejected()
	}
	u.staticData = bytes.Clone(req.StaticData)
	return accepted()
}

func (s *Service) getStaticData(req *corenodeproto.GetStaticDataRequest) (corenodeproto.Message, error) {
	u, ok := s.byName[req.Username]
	if !ok {
		return nil, corenodeproto.ErrUnknownUser
	}
	return &corenodeproto.GetStaticDataResponse{StaticData: u.staticData}, nil
}

func (s *Service) allowSharingKey(req *corenodeproto.AllowSharingKeyRequest) (corenodeproto.Message, error) {
	owner, err := identity.FromPublicKeys(req.OwnerPublicKeys)
	if err != nil {
		return rejected()
	}
	if _, ok := s.byKeys[owner]; !ok {
		return nil, corenodeproto.ErrUnknownOwner
	}
	writerKeys, err := owner.Unsign(req.SignedWriter)
	if err != nil {
		return rejected()
	}
	if _, err = identity.FromPublicKeys(writerKeys); err != nil {
		return rejected()
	}
	for _, k := range s.sharing[owner] {
		if bytes.Equal(k, writerKeys) {
			return accepted()
		}
	}
	s.sharing[owner] = append(s.sharing[owner], writerKeys)
	return accepted()
}

func (s *Service) banSharingKey(req *corenodeproto.BanSharingKeyRequest) (corenodeproto.Message, error) {
	u, ok := s.byName[req.Username]
	if !ok {
		return rejected()
	}
	if !u.pub.IsValidSignature(req.SignedHash, req.SharingPublicKeys) {
		return rejected()
	}
	keys := s.sharing[u.pub]
	for i, k := range keys {
		if bytes.Equal(k, req.SharingPublicKeys) {
			s.sharing[u.pub] = append(keys[:i:i], keys[i+1:]...)
			return accepted()
		}
	}
	return rejected()
}

func (s *Service) getSharingKeys(req *corenodeproto.GetSharingKeysRequest) (corenodeproto.Message, error) {
	u, ok := s.byName[req.Username]
	if !ok {
		return nil, corenodeproto.ErrUnknownUser
	}
	return &corenodeproto.GetSharingKeysResponse{PublicKeys: clone(s.sharing[u.pub])}, nil
}

func (s *Service) followRequest(req *corenodeproto.FollowRequestRequest) (corenodeproto.Message, error) {
	target, err := identity.FromPublicKeys(req.TargetPublicKeys)
	if err != nil {
		return rejected()
	}
	if _, ok := s.byKeys[target]; !ok {
		return rejected()
	}
	if len(s.inbox[target]) >= corenodeproto.MaxFollowRequests {
		return rejected()
	}
	s.inbox[target] = append(s.inbox[target], bytes.Clone(req.Envelope))
	return accepted()
}

func (s *Service) getFollowRequests(req *corenodeproto.GetFollowRequestsRequest) (corenodeproto.Message, error) {
	owner, err := identity.FromPublicKeys(req.OwnerPublicKeys)
	if err != nil {
		return nil, corenodeproto.ErrBadRequest
	}
	return &corenodeproto.GetFollowRequestsResponse{Envelopes: clone(s.inbox[owner])}, nil
}

func (s *Service) removeFollowRequest(req *corenodeproto.RemoveFollowRequestRequest) (corenodeproto.Message, error) {
	u, ok := s.byName[req.Username]
	if !ok {
		return rejected()
	}
	data, err := u.pub.Unsign(req.Signed)
	if err != nil || !bytes.Equal(data, req.Data) {
		return rejected()
	}
	envelopes := s.inbox[u.pub]
	for i, e := range envelopes {
		if bytes.Equal(e, req.Data) {
			s.inbox[u.pub] = append(envelopes[:i:i], envelopes[i+1:]...)
			return accepted()
		}
	}
	return rejected()
}

func clone(items [][]byte) [][]byte {
	res := make([][]byte, 0, len(items))
	for _, item := range items {
		res = append(res, bytes.Clone(item))
	}
	return res
}

type loopback struct {
	s *Service
}

func (l loopback) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &rpcerr.TransportError{Err: err}
	}
	resp, status, code := l.s.Handle(strings.TrimPrefix(path, "/"), body)
	if status != http.StatusOK {
		return nil, &rpcerr.TransportError{Status: status, Code: code}
	}
	return resp, nil
}
