//go:build !headless

package main

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	labelVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec2 a_texcoord;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_texcoord;
    };` + "\x00"
	labelFragmentShader = `
    precision highp float;
    uniform sampler2D u_tex;
    varying vec2 v_texcoord;
    void main(void) {
      gl_FragColor = vec4(0.0, 0.0, 0.0, texture2D(u_tex, v_texcoord).a);
    };` + "\x00"
)

// labelScale enlarges the 7x13 bitmap font.
const labelScale = 2

type LabelVertex struct {
	position [2]float32
	texcoord [2]float32
}

// LabelAtlas is a texture holding a fixed set of text labels stacked
// vertically.
type LabelAtlas struct {
	rects       map[string]Rect
	size        Size
	tex         Texture
	program     Program
	a_position  int32
	a_texcoord  int32
	u_transform int32
	u_tex       int32
	vertices    []LabelVertex
}

// renderLabels rasterizes every label with the basic font, scaled up by
// labelScale, into one alpha image.
func renderLabels(labels []string) (*image.Alpha, map[string]Rect) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	width := 0
	for _, s := range labels {
		width = max(width, font.MeasureString(face, s).Ceil())
	}
	atlas := image.NewAlpha(image.Rect(0, 0, width*labelScale, lineHeight*labelScale*len(labels)))
	rects := make(map[string]Rect, len(labels))
	for i, s := range labels {
		w := font.MeasureString(face, s).Ceil()
		line := image.NewAlpha(image.Rect(0, 0, max(w, 1), lineHeight))
		d := font.Drawer{
			Dst:  line,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(s)
		dst := image.Rect(0, i*lineHeight*labelScale, w*labelScale, (i+1)*lineHeight*labelScale)
		draw.NearestNeighbor.Scale(atlas, dst, line, line.Bounds(), draw.Src, nil)
		rects[s] = dst
	}
	return atlas, rects
}

func CreateLabelAtlas(labels []string) (*LabelAtlas, error) {
	img, rects := renderLabels(labels)
	program, err := CreateProgram(labelVertexShader, labelFragmentShader)
	if err != nil {
		return nil, err
	}
	tex, err := CreateAlphaTexture(img)
	if err != nil {
		program.Close()
		return nil, err
	}
	return &LabelAtlas{
		rects:       rects,
		size:        img.Bounds().Size(),
		tex:         tex,
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_texcoord:  program.GetAttribLocation("a_texcoord\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_tex:       program.GetUniformLocation("u_tex\x00"),
		vertices:    make([]LabelVertex, 0, 6),
	}, nil
}

// DrawLabel draws label centered horizontally on x with its top at y.
func (la *LabelAtlas) DrawLabel(label string, x, y int) error {
	src, ok := la.rects[label]
	if !ok {
		return fmt.Errorf("unknown label: %q", label)
	}
	x0 := float32(x - src.Dx()/2)
	y0 := float32(y)
	x1 := x0 + float32(src.Dx())
	y1 := y0 + float32(src.Dy())
	s0 := float32(src.Min.X) / float32(la.size.X)
	s1 := float32(src.Max.X) / float32(la.size.X)
	t0 := float32(src.Min.Y) / float32(la.size.Y)
	t1 := float32(src.Max.Y) / float32(la.size.Y)
	la.vertices = append(la.vertices[:0],
		LabelVertex{[2]float32{x0, y0}, [2]float32{s0, t0}},
		LabelVertex{[2]float32{x0, y1}, [2]float32{s0, t1}},
		LabelVertex{[2]float32{x1, y1}, [2]float32{s1, t1}},
		LabelVertex{[2]float32{x1, y1}, [2]float32{s1, t1}},
		LabelVertex{[2]float32{x1, y0}, [2]float32{s1, t0}},
		LabelVertex{[2]float32{x0, y0}, [2]float32{s0, t0}},
	)
	la.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	la.tex.Bind()
	gl.Uniform1i(la.u_tex, 0)
	mTransform := pixelTransform(Point{})
	gl.UniformMatrix4fv(la.u_transform, 1, false, &mTransform[0])
	stride := int32(unsafe.Sizeof(LabelVertex{}))
	gl.EnableVertexAttribArray(uint32(la.a_position))
	gl.VertexAttribPointer(uint32(la.a_position), 2, gl.FLOAT, false, stride,
		gl.Ptr(&la.vertices[0].position[0]))
	gl.EnableVertexAttribArray(uint32(la.a_texcoord))
	gl.VertexAttribPointer(uint32(la.a_texcoord), 2, gl.FLOAT, false, stride,
		gl.Ptr(&la.vertices[0].texcoord[0]))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(la.vertices)))
	gl.Disable(gl.BLEND)
	gl.DisableVertexAttribArray(uint32(la.a_position))
	gl.DisableVertexAttribArray(uint32(la.a_texcoord))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (la *LabelAtlas) Close() {
	la.tex.Close()
	la.program.Close()
}
