package api

import (
	"math"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/gomodule/redigo/redis"

	"github.com/xtding233/pcg32-backend/internal/pcg"
)

func dialRESP(t *testing.T, e *Engine) redis.Conn {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go ServeRESP(ln, e)
	t.Cleanup(func() { ln.Close() })

	conn, err := redis.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRESPPing(t *testing.T) {
	conn := dialRESP(t, testEngine(t))
	pong, err := redis.String(conn.Do("PING"))
	if err != nil || pong != "PONG" {
		t.Fatalf("got %q %v", pong, err)
	}
	echo, err := redis.String(conn.Do("PING", "hi"))
	if err != nil || echo != "hi" {
		t.Fatalf("got %q %v", echo, err)
	}
}

func TestRESPSeed(t *testing.T) {
	conn := dialRESP(t, testEngine(t))
	s, err := redis.String(conn.Do("SEED", testPhrase))
	if err != nil {
		t.Fatal(err)
	}
	if s != pcg.FromPhrase(testPhrase).String() {
		t.Fatalf("state %s", s)
	}
	s, err = redis.String(conn.Do("SEED"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pcg.ParseState(s); err != nil {
		t.Fatal(err)
	}
}

func TestRESPNext(t *testing.T) {
	conn := dialRESP(t, testEngine(t))
	vals, err := redis.Values(conn.Do("NEXT", stateOne, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 3 {
		t.Fatalf("reply %v", vals)
	}
	if vals[0].(int64) != 0 || vals[1].(int64) != goldenU1 {
		t.Fatalf("values %v", vals[:2])
	}
	next := string(vals[2].([]byte))

	// continuing from the returned state picks up where we left off
	more, err := redis.Values(conn.Do("NEXT", next))
	if err != nil {
		t.Fatal(err)
	}
	if more[0].(int64) != 932996374 {
		t.Fatalf("continued value %v", more[0])
	}
}

func TestRESPNextFloat(t *testing.T) {
	conn := dialRESP(t, testEngine(t))
	vals, err := redis.Strings(conn.Do("NEXTFLOAT", stateOne, 2))
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []uint32{goldenF0, goldenF1} {
		f, err := strconv.ParseFloat(vals[i], 32)
		if err != nil {
			t.Fatal(err)
		}
		if got := math.Float32bits(float32(f)); got != want {
			t.Fatalf("float %d: bits %#x, want %#x", i, got, want)
		}
	}
	if vals[2] != floatsTwo {
		t.Fatalf("state %s", vals[2])
	}
}

func TestRESPBelow(t *testing.T) {
	conn := dialRESP(t, testEngine(t))
	vals, err := redis.Values(conn.Do("BELOW", stateOne, 6))
	if err != nil {
		t.Fatal(err)
	}
	if vals[0].(int64) != 4 {
		t.Fatalf("value %v", vals[0])
	}
}

func TestRESPErrors(t *testing.T) {
	e := testEngine(t)
	e.seed = brokenEntropy
	conn := dialRESP(t, e)

	for _, cmd := range [][]interface{}{
		{"NEXT"},
		{"NEXT", "nothex"},
		{"NEXT", stateOne, 100},
		{"NEXTFLOAT", stateOne, "x"},
		{"BELOW", stateOne, 0},
		{"SEED"},
		{"FLIP"},
	} {
		_, err := conn.Do(cmd[0].(string), cmd[1:]...)
		if err == nil || !strings.HasPrefix(err.Error(), "ERR") {
			t.Fatalf("%v: got %v, want an ERR reply", cmd, err)
		}
	}
}
