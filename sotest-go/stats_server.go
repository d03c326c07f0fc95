package sotest_go

import (
	"log"
	"net"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"
)

// StatsServer exposes the expvar counters of a long-running session.
//
// /stats output may be filtered using regexps. For example:
//
//   - /stats?r=sotestCall will show only the call counters.
type StatsServer struct {
	server_   *fasthttp.Server
	listener_ net.Listener
}

func statsHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/stats":
		expvarhandler.ExpvarHandler(ctx)
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

// StartStatsServer binds addr synchronously so that a bad address is a
// startup error, then serves in the background.
func StartStatsServer(addr string) (*StatsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &ResourceError{Op: "Error listening on", Source: addr, Err: err}
	}
	server := &fasthttp.Server{
		Handler:      statsHandler,
		Name:         kProgName,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
	go func() {
		if err := server.Serve(ln); err != nil {
			log.Printf("error in Serve: %v", err)
		}
	}()
	return &StatsServer{server_: server, listener_: ln}, nil
}

func (this *StatsServer) Addr() string {
	return this.listener_.Addr().String()
}

func (this *StatsServer) Shutdown() error {
	return this.server_.Shutdown()
}
