// Command gltrace replays a TOML draw scenario through gldraw and prints
// the device commands each draw emits.
//
// Usage:
//
//	gltrace -scenario testdata/basic.toml [-v]
//
// Without -v only the number of state-changing commands per draw is
// printed. With -v every command is listed and debug logging is enabled.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/gogpu/gldraw"
	"github.com/gogpu/gldraw/gldrawtest"
)

func main() {
	var (
		scenario = flag.String("scenario", "", "scenario file (TOML)")
		verbose  = flag.Bool("v", false, "list every command and enable debug logging")
	)
	flag.Parse()

	if *scenario == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*scenario)
	if err != nil {
		log.Fatalf("Failed to open scenario: %v", err)
	}
	defer f.Close()

	s, err := LoadScenario(f)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	if *verbose {
		gldraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	failed, err := Replay(s, os.Stdout, *verbose)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// Replay runs every draw of s against a recording device and writes a
// report to w. It returns the number of draws that failed; failed draws
// do not stop the replay.
func Replay(s *Scenario, w io.Writer, verbose bool) (int, error) {
	caps, err := s.Device.Capabilities()
	if err != nil {
		return 0, err
	}

	type linked struct {
		prog   *gldraw.ProgramInfo
		format *gldraw.VertexFormat
	}
	programs := make(map[uint32]linked, len(s.Programs))
	for _, p := range s.Programs {
		prog, format, err := p.build()
		if err != nil {
			return 0, fmt.Errorf("program %d: %w", p.ID, err)
		}
		programs[p.ID] = linked{prog, format}
	}

	var opts []gldraw.Option
	if s.Device.SamplerCache > 0 {
		opts = append(opts, gldraw.WithSamplerCacheLimit(s.Device.SamplerCache))
	}
	rec := gldrawtest.NewRecorder()
	ctx := gldraw.NewContext(rec, caps, opts...)

	// Buffers are shared between draws so their fence slots are too.
	buffers := make(map[uint32]*gldraw.BufferSlice)
	buffer := func(id uint32, stride, count int) *gldraw.BufferSlice {
		b, ok := buffers[id]
		if !ok || b.Count != count {
			b = &gldraw.BufferSlice{ID: id, Size: stride * count, Count: count, Slot: new(gldraw.FenceSlot)}
			if ok {
				b.Slot = buffers[id].Slot
			}
			buffers[id] = b
		}
		return b
	}

	fmt.Fprintf(w, "device: %s\n", caps.Version)
	failed := 0
	total := 0
	for i, d := range s.Draws {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		p, ok := programs[d.Program]
		if !ok {
			return failed, fmt.Errorf("draw %s: %w: unknown program %d", name, errScenario, d.Program)
		}
		req, err := d.request(p.prog, p.format, buffer)
		if err != nil {
			return failed, fmt.Errorf("draw %s: %w", name, err)
		}

		rec.Reset()
		if err := ctx.Draw(req); err != nil {
			failed++
			fmt.Fprintf(w, "draw %s: error: %v\n", name, err)
			continue
		}
		changes := len(rec.StateChanges())
		total += changes
		fmt.Fprintf(w, "draw %s: %d state changes\n", name, changes)
		if verbose {
			for _, c := range rec.Calls() {
				fmt.Fprintf(w, "  %s\n", c)
			}
		}
	}
	fmt.Fprintf(w, "total: %d draws, %d failed, %d state changes, %d live fences\n",
		len(s.Draws), failed, total, rec.LiveSyncs())
	return failed, nil
}

// request builds the draw request of d. buffer returns the shared view
// of a buffer object.
func (d DrawDesc) request(prog *gldraw.ProgramInfo, format *gldraw.VertexFormat,
	buffer func(id uint32, stride, count int) *gldraw.BufferSlice,
) (*gldraw.DrawRequest, error) {
	prim, err := parsePrimitive(d.Primitive, d.PatchVertices)
	if err != nil {
		return nil, err
	}
	params, err := d.parameters()
	if err != nil {
		return nil, err
	}

	req := &gldraw.DrawRequest{
		Framebuffer: d.Framebuffer,
		Width:       d.Width,
		Height:      d.Height,
		Program:     prog,
		Parameters:  params,
		Indices:     gldraw.NoIndices(prim),
	}
	if req.Width == 0 || req.Height == 0 {
		req.Width, req.Height = 640, 480
	}

	if d.VertexBuffer != 0 {
		vbo := buffer(d.VertexBuffer, format.Stride, d.VertexCount)
		req.Vertices = append(req.Vertices, gldraw.VertexBuffer(vbo, format))
	} else if d.VertexCount > 0 {
		req.Vertices = append(req.Vertices, gldraw.VertexMarker(d.VertexCount, false))
	}
	if d.Instances > 0 {
		req.Vertices = append(req.Vertices, gldraw.VertexMarker(d.Instances, true))
	}
	if d.IndexBuffer != 0 {
		typ, err := parseIndexType(d.IndexType)
		if err != nil {
			return nil, err
		}
		req.Indices = gldraw.IndexBuffer(buffer(d.IndexBuffer, typ.Size(), d.IndexCount), typ, prim)
	}

	if len(d.Uniforms) > 0 {
		set := gldraw.NewUniformSet()
		for _, name := range slices.Sorted(maps.Keys(d.Uniforms)) {
			raw := d.Uniforms[name]
			info, ok := prog.Uniform(name)
			if !ok {
				return nil, fmt.Errorf("%w: program %d has no uniform %q", errScenario, prog.ID, name)
			}
			v, err := uniformValue(info.Type, raw)
			if err != nil {
				return nil, fmt.Errorf("uniform %q: %w", name, err)
			}
			set.Set(name, v)
		}
		req.Uniforms = set
	}
	return req, nil
}
