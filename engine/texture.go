package engine

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureType tells a material which slot a texture fills.
type TextureType int

const (
	TextureDiffuse TextureType = iota
	TextureSpecular
	TextureAmbient
	TextureEmissive
	TextureHeight
	TextureNormal
	TextureShininess
	TextureDisplacement
	TextureLight
	TextureReflection
)

var textureTypeNames = [...]string{
	TextureDiffuse:      "diffuse",
	TextureSpecular:     "specular",
	TextureAmbient:      "ambient",
	TextureEmissive:     "emissive",
	TextureHeight:       "height",
	TextureNormal:       "normal",
	TextureShininess:    "shininess",
	TextureDisplacement: "displacement",
	TextureLight:        "light",
	TextureReflection:   "reflection",
}

func (t TextureType) String() string {
	if t >= 0 && int(t) < len(textureTypeNames) {
		return textureTypeNames[t]
	}
	return fmt.Sprintf("TextureType(%d)", int(t))
}

// Texture is a 2D RGB texture with mipmaps.
type Texture struct {
	buffer uint32
	path   string
	typ    TextureType

	w, h int
}

// NewTexture creates an empty texture, repeating, linear magnification and
// nearest mipmap linear minification.
func NewTexture() *Texture {
	t := &Texture{}

	gl.GenTextures(1, &t.buffer)
	gl.BindTexture(gl.TEXTURE_2D, t.buffer)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t
}

// NewTextureFromFile always returns a valid texture, if the image could
// not be loaded the failure is logged and the texture stays empty.
func NewTextureFromFile(path string, typ TextureType) *Texture {
	t := NewTexture()
	t.path = path
	t.typ = typ

	t.LoadImage(path)

	return t
}

// LoadImage replaces the texture image with the file contents.
func (t *Texture) LoadImage(path string) error {
	pix, w, h, err := loadRGB(path)
	if err != nil {
		log.Printf("failed to open %s: %v", path, err)
		return err
	}

	gl.BindTexture(gl.TEXTURE_2D, t.buffer)

	// rgb rows are not 4 byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB,
		int32(w), int32(h),
		0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.w, t.h = w, h
	return nil
}

func loadRGB(path string) ([]uint8, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	return decodeRGB(file)
}

// decodeRGB decodes any registered image format into tightly packed 8 bit
// rgb rows, top row first. Alpha is dropped.
func decodeRGB(r io.Reader) ([]uint8, int, int, error) {
	im, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := im.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, 0, 0, fmt.Errorf("empty image %dx%d", w, h)
	}

	pix := make([]uint8, 0, w*h*3)

	// straight alpha, common for png
	if n, ok := im.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := n.Pix[n.PixOffset(bounds.Min.X, y):n.PixOffset(bounds.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				pix = append(pix, row[i], row[i+1], row[i+2])
			}
		}
		return pix, w, h, nil
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(im.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}

	return pix, w, h, nil
}

func (t *Texture) ID() uint32        { return t.buffer }
func (t *Texture) Path() string      { return t.path }
func (t *Texture) Type() TextureType { return t.typ }
func (t *Texture) Size() (w, h int)  { return t.w, t.h }

func (t *Texture) SetType(typ TextureType) { t.typ = typ }

// Bind binds the texture on texture unit GL_TEXTURE0+unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.buffer)
}

func (t *Texture) Unbind() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) Destroy() {
	if t.buffer != 0 {
		gl.DeleteTextures(1, &t.buffer)
		t.buffer = 0
	}
}
