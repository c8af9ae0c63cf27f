package utils

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// GlobalPointer reads the X11 root window pointer. A wallpaper window sits
// below every other window and never receives motion events of its own.
type GlobalPointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func OpenGlobalPointer() (*GlobalPointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &GlobalPointer{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// Position returns the pointer position in root window (screen) coordinates.
func (p *GlobalPointer) Position() (float64, float64, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return float64(reply.RootX), float64(reply.RootY), nil
}

func (p *GlobalPointer) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
