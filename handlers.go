package main

import (
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/funny-falcon/rawvec/vec"
)

var jsonConfig = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

// values is the single container the demo serves. The Vec itself is
// single-threaded; the mutex is the external exclusion around it.
var valuesMu sync.Mutex
var values = vec.New[int32]()

type ValuesIn struct {
	Values []int32 `json:"values"`
}

type StatsOut struct {
	Len   int  `json:"len"`
	Cap   int  `json:"cap"`
	Empty bool `json:"empty"`
}

type ValueOut struct {
	Index int   `json:"index"`
	Value int32 `json:"value"`
}

func postHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	logf("post Path: %s", path)
	switch path {
	case "/values/", "/values":
		if !doPush(ctx) {
			ctx.SetStatusCode(400)
		}
	default:
		ctx.SetStatusCode(404)
	}
}

func doPush(ctx *fasthttp.RequestCtx) bool {
	var in ValuesIn
	iter := jsonConfig.BorrowIterator(ctx.PostBody())
	iter.ReadVal(&in)
	err := iter.Error
	jsonConfig.ReturnIterator(iter)
	if err != nil {
		logf("push iter error: %v", err)
		return false
	}

	valuesMu.Lock()
	for _, v := range in.Values {
		values.Push(v)
	}
	out := StatsOut{Len: values.Len(), Cap: values.Cap(), Empty: values.Empty()}
	valuesMu.Unlock()

	writeJSON(ctx, &out)
	return true
}

func getHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	logf("get Path: %s", path)
	switch {
	case path == "/stats/" || path == "/stats":
		valuesMu.Lock()
		out := StatsOut{Len: values.Len(), Cap: values.Cap(), Empty: values.Empty()}
		valuesMu.Unlock()
		writeJSON(ctx, &out)
	case strings.HasPrefix(path, "/values/"):
		ids := strings.TrimSuffix(path[len("/values/"):], "/")
		i, err := strconv.Atoi(ids)
		if err != nil {
			ctx.SetStatusCode(404)
			return
		}
		valuesMu.Lock()
		p := values.Get(i)
		out := ValueOut{Index: i}
		ok := p != nil
		if ok {
			out.Value = *p
		}
		valuesMu.Unlock()
		if !ok {
			ctx.SetStatusCode(404)
			return
		}
		writeJSON(ctx, &out)
	default:
		ctx.SetStatusCode(404)
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, out interface{}) {
	data, err := jsonConfig.Marshal(out)
	if err != nil {
		ctx.SetStatusCode(500)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
