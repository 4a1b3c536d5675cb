// Command ambercore runs the core search/rules engine behind the harness's
// stable external contract: either the stdin test-mode REPL, or a thin TCP
// client that reserves a seat and exchanges FEN/XML move fragments with the
// tournament harness. The harness's own framing, room-joining, and
// multi-process orchestration are out of scope; this is the minimal glue
// that drives the core through its one real capability, Player.RequestMove.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/brineforge/ambercore/internal/board"
	"github.com/brineforge/ambercore/internal/engine"
)

func main() {
	host := flag.String("host", "localhost", "harness host")
	flag.StringVar(host, "h", "localhost", "harness host (shorthand)")
	port := flag.Int("port", 0, "harness port")
	flag.IntVar(port, "p", 0, "harness port (shorthand)")
	reservation := flag.String("reservation", "", "seat reservation token")
	flag.StringVar(reservation, "r", "", "seat reservation token (shorthand)")
	test := flag.Bool("test", false, "run the stdin test-mode REPL instead of connecting to a harness")
	flag.BoolVar(test, "T", false, "run the stdin test-mode REPL (shorthand)")
	timeMs := flag.Int("time", int(engine.DefaultTimeLimit.Milliseconds()), "search time budget in milliseconds")
	flag.IntVar(timeMs, "t", int(engine.DefaultTimeLimit.Milliseconds()), "search time budget in milliseconds (shorthand)")
	flag.Parse()

	player := engine.NewSearchPlayer()
	player.SetTimeLimit(*timeMs)

	if *test {
		runREPL(player, os.Stdin, os.Stdout)
		return
	}

	runHarnessClient(player, *host, *port, *reservation)
}

// runREPL implements the test-mode protocol: "reset\n" clears per-match
// state and is echoed back; any other line is a FEN, answered with
// "action: <serialized>\n".
func runREPL(player engine.Player, in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "reset" {
			player.Reset()
			fmt.Fprintln(w, "reset")
			w.Flush()
			continue
		}

		state, err := board.FromFEN(line)
		if err != nil {
			log.Fatalf("malformed FEN on stdin: %v", err)
		}

		a := player.RequestMove(state)
		fmt.Fprintf(w, "action: %s\n", a.Serialize())
		w.Flush()
	}
}

// runHarnessClient dials the harness, submits the reservation, then loops:
// read a FEN line, compute a move, write it back as the XML move fragment.
func runHarnessClient(player engine.Player, host string, port int, reservation string) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatalf("dial %s: %v", addr, err)
	}
	defer conn.Close()

	fmt.Fprintf(conn, "<data class=\"reservation\" token=%q/>\n", reservation)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		state, err := board.FromFEN(line)
		if err != nil {
			log.Fatalf("malformed FEN from harness: %v", err)
		}

		a := player.RequestMove(state)
		fmt.Fprintln(conn, a.ToXML())
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("harness connection: %v", err)
	}
}
