//go:build !headless

package main

import (
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	flatVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    uniform mat4 u_transform;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
    };` + "\x00"
	flatFragmentShader = `
    precision highp float;
    uniform vec4 u_color;
    void main(void) {
      gl_FragColor = u_color;
    };` + "\x00"
)

var (
	colorPanel  = mgl.Vec4{200 / 255.0, 200 / 255.0, 200 / 255.0, 1}
	colorBorder = mgl.Vec4{0, 0, 0, 1}
	colorWave   = mgl.Vec4{230 / 255.0, 41 / 255.0, 55 / 255.0, 1}
	colorFill   = mgl.Vec4{0, 121 / 255.0, 241 / 255.0, 1}
)

// scopeFullScale is the amplitude that reaches the panel edge.
const scopeFullScale = 5.0

type PointVertex struct {
	position [2]float32
}

// Painter draws flat-colored primitives in pixel coordinates.
type Painter struct {
	program     Program
	a_position  int32
	u_transform int32
	u_color     int32
	vertices    []PointVertex
}

func CreatePainter() (*Painter, error) {
	program, err := CreateProgram(flatVertexShader, flatFragmentShader)
	if err != nil {
		return nil, err
	}
	return &Painter{
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_color:     program.GetUniformLocation("u_color\x00"),
		vertices:    make([]PointVertex, 0, PreviewSize),
	}, nil
}

func (p *Painter) draw(mode uint32, color mgl.Vec4) {
	if len(p.vertices) == 0 {
		return
	}
	p.program.Use()
	mTransform := pixelTransform(Point{})
	gl.UniformMatrix4fv(p.u_transform, 1, false, &mTransform[0])
	gl.Uniform4fv(p.u_color, 1, &color[0])
	gl.EnableVertexAttribArray(uint32(p.a_position))
	gl.VertexAttribPointer(
		uint32(p.a_position), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(PointVertex{})),
		gl.Ptr(&p.vertices[0].position[0]))
	gl.DrawArrays(mode, 0, int32(len(p.vertices)))
	gl.DisableVertexAttribArray(uint32(p.a_position))
	p.vertices = p.vertices[:0]
}

func (p *Painter) vertex(x, y float32) {
	p.vertices = append(p.vertices, PointVertex{position: [2]float32{x, y}})
}

func (p *Painter) FillRect(r Rect, color mgl.Vec4) {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	p.vertex(x0, y0)
	p.vertex(x0, y1)
	p.vertex(x1, y1)
	p.vertex(x1, y1)
	p.vertex(x1, y0)
	p.vertex(x0, y0)
	p.draw(gl.TRIANGLES, color)
}

func (p *Painter) StrokeRect(r Rect, color mgl.Vec4) {
	x0, y0 := float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5
	x1, y1 := float32(r.Max.X)-0.5, float32(r.Max.Y)-0.5
	p.vertex(x0, y0)
	p.vertex(x0, y1)
	p.vertex(x1, y1)
	p.vertex(x1, y0)
	p.draw(gl.LINE_LOOP, color)
}

// DrawScope plots samples across r, oldest on the left.
func (p *Painter) DrawScope(samples []Smp, r Rect) {
	p.FillRect(r, colorPanel)
	p.StrokeRect(r, colorBorder)
	n := len(samples)
	if n < 2 {
		return
	}
	width := float32(r.Dx())
	mid := float32(r.Min.Y) + float32(r.Dy())/2
	scale := float32(r.Dy()) / (2 * scopeFullScale)
	for i, smp := range samples {
		x := float32(r.Min.X) + float32(i)/float32(n-1)*width
		p.vertex(x, mid-smp*scale)
	}
	gl.LineWidth(3)
	p.draw(gl.LINE_STRIP, colorWave)
	gl.LineWidth(1)
}

// DrawSlider shows value in [0,1] as a bar filling r from the bottom.
func (p *Painter) DrawSlider(r Rect, value float32) {
	p.FillRect(r, colorPanel)
	filled := r
	filled.Min.Y = r.Max.Y - int(ClampUnit(value)*float32(r.Dy()))
	if filled.Dy() > 0 {
		p.FillRect(filled, colorFill)
	}
	p.StrokeRect(r, colorBorder)
}

func (p *Painter) Close() {
	p.program.Close()
}
