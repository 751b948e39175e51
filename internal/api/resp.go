package api

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/tidwall/redcon"

	"github.com/xtding233/pcg32-backend/internal/logger"
	"github.com/xtding233/pcg32-backend/internal/pcg"
)

var errWrongNumArgs = errors.New("wrong number of arguments")

// ServeRESP serves the Redis protocol front-end on ln until ln is closed.
//
//	PING [msg]
//	SEED [phrase]                -> state
//	NEXT state [count]           -> [value..., state]
//	NEXTFLOAT state [count]      -> [value..., state]
//	BELOW state bound            -> [value, state]
//	QUIT
func ServeRESP(ln net.Listener, e *Engine) error {
	return redcon.Serve(ln,
		func(conn redcon.Conn, cmd redcon.Command) {
			execRESP(e, conn, respArgs(cmd))
		},
		func(conn redcon.Conn) bool {
			logger.Debug().Str("addr", conn.RemoteAddr()).Msg("resp client connected")
			return true
		},
		func(conn redcon.Conn, err error) {
			if err != nil {
				logger.Debug().Err(err).Str("addr", conn.RemoteAddr()).Msg("resp client closed")
			}
		},
	)
}

func respArgs(cmd redcon.Command) []string {
	args := make([]string, len(cmd.Args))
	args[0] = strings.ToLower(string(cmd.Args[0]))
	for i := 1; i < len(cmd.Args); i++ {
		args[i] = string(cmd.Args[i])
	}
	return args
}

func writeRESPErr(conn redcon.Conn, err error) {
	if errors.Is(err, pcg.ErrEntropyUnavailable) {
		logger.Error(err).Msg("seed failed")
	}
	conn.WriteError("ERR " + err.Error())
}

func respCount(args []string, at int) (int, error) {
	if len(args) <= at {
		return 0, nil
	}
	n, err := strconv.Atoi(args[at])
	if err != nil {
		return 0, badParam("count")
	}
	return n, nil
}

func execRESP(e *Engine, conn redcon.Conn, args []string) {
	switch args[0] {
	case "ping":
		switch len(args) {
		case 1:
			conn.WriteString("PONG")
		case 2:
			conn.WriteBulkString(args[1])
		default:
			writeRESPErr(conn, errWrongNumArgs)
		}
	case "quit":
		conn.WriteString("OK")
		conn.Close()
	case "seed":
		if len(args) > 2 {
			writeRESPErr(conn, errWrongNumArgs)
			return
		}
		var phrase string
		if len(args) == 2 {
			phrase = args[1]
		}
		s, err := e.Seed(phrase)
		if err != nil {
			writeRESPErr(conn, err)
			return
		}
		conn.WriteBulkString(s.String())
	case "next", "nextfloat":
		if len(args) < 2 || len(args) > 3 {
			writeRESPErr(conn, errWrongNumArgs)
			return
		}
		s, err := e.ParseState(args[1])
		if err != nil {
			writeRESPErr(conn, err)
			return
		}
		n, err := respCount(args, 2)
		if err != nil {
			writeRESPErr(conn, err)
			return
		}
		if args[0] == "next" {
			vals, next, err := e.Next(s, n)
			if err != nil {
				writeRESPErr(conn, err)
				return
			}
			conn.WriteArray(len(vals) + 1)
			for _, v := range vals {
				conn.WriteInt64(int64(v))
			}
			conn.WriteBulkString(next.String())
			return
		}
		vals, next, err := e.NextFloat(s, n)
		if err != nil {
			writeRESPErr(conn, err)
			return
		}
		conn.WriteArray(len(vals) + 1)
		for _, v := range vals {
			conn.WriteBulkString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
		conn.WriteBulkString(next.String())
	case "below":
		if len(args) != 3 {
			writeRESPErr(conn, errWrongNumArgs)
			return
		}
		s, err := e.ParseState(args[1])
		if err != nil {
			writeRESPErr(conn, err)
			return
		}
		bound, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			writeRESPErr(conn, badParam("bound"))
			return
		}
		v, next, err := e.Below(s, uint32(bound))
		if err != nil {
			writeRESPErr(conn, err)
			return
		}
		conn.WriteArray(2)
		conn.WriteInt64(int64(v))
		conn.WriteBulkString(next.String())
	default:
		conn.WriteError("ERR unknown command '" + args[0] + "'")
	}
}
