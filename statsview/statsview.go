// This file is part of Gopher81.
//
// Gopher81 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher81 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher81.  If not, see <https://www.gnu.org/licenses/>.

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/gopher81/gopher81/logger"
)

// Address is the default address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Server is a running statistics server.
type Server struct {
	addr string
	mgr  *statsview.ViewManager
}

// Launch starts the statistics server at the address. If the address is empty
// then the default Address is used. A message describing where the
// statistics can be viewed is written to output.
func Launch(output io.Writer, addr string) *Server {
	if addr == "" {
		addr = Address
	}

	viewer.SetConfiguration(viewer.WithAddr(addr))
	srv := &Server{
		addr: addr,
		mgr:  statsview.New(),
	}

	go func() {
		if err := srv.mgr.Start(); err != nil {
			logger.Logf(logger.Allow, "statsview", "%v", err)
		}
	}()

	fmt.Fprintf(output, "stats server available at %s\n", srv.URL())

	return srv
}

// URL returns the location of the graphical statistics.
func (srv *Server) URL() string {
	return fmt.Sprintf("%s%s", srv.addr, url)
}

// Stop the server.
func (srv *Server) Stop() {
	srv.mgr.Stop()
	logger.Log(logger.Allow, "statsview", "server stopped")
}
