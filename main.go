package main

import (
	"flag"
	"log"

	"github.com/valyala/fasthttp"
)

var port = flag.String("port", "8080", "port to listen")
var verbose = flag.Bool("verbose", false, "log requests")

func main() {
	log.SetFlags(log.Lmicroseconds | log.Lshortfile)
	flag.Parse()

	err := fasthttp.ListenAndServe(":"+*port, handler)
	if err != nil {
		log.Fatal(err)
	}
}

func handler(ctx *fasthttp.RequestCtx) {
	switch {
	case ctx.IsGet():
		getHandler(ctx)
	case ctx.IsPost():
		postHandler(ctx)
	default:
		ctx.SetStatusCode(405)
	}
}

func logf(format string, args ...interface{}) {
	if *verbose {
		log.Printf(format, args...)
	}
}
