package decoder

import (
	"errors"
	"fmt"
	"image"
	"math"

	"barcodereader/internal/dto"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
	"github.com/samber/lo"
)

// minLinearHeight is the box height given to 1-D codes, whose result
// points all sit on the scanned row.
const minLinearHeight = 20

// scanner finds every code of one symbology in a bitmap.
type scanner interface {
	scan(bmp *gozxing.BinaryBitmap) ([]*gozxing.Result, error)
}

// singleScanner wraps readers that stop at the first code.
type singleScanner struct {
	reader gozxing.Reader
}

func (s singleScanner) scan(bmp *gozxing.BinaryBitmap) ([]*gozxing.Result, error) {
	result, err := s.reader.Decode(bmp, nil)
	s.reader.Reset()
	if err != nil {
		return nil, err
	}
	return []*gozxing.Result{result}, nil
}

type multipleReader interface {
	DecodeMultiple(image *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error)
}

// multiScanner returns every code the reader finds in the frame.
type multiScanner struct {
	reader multipleReader
}

func (s multiScanner) scan(bmp *gozxing.BinaryBitmap) ([]*gozxing.Result, error) {
	return s.reader.DecodeMultiple(bmp, nil)
}

func single(r gozxing.Reader) scanner {
	return singleScanner{reader: r}
}

type readerSpec struct {
	symbology dto.Symbology
	create    func() scanner
}

var readerSpecs = []readerSpec{
	{dto.SymbologyQRCode, func() scanner { return multiScanner{reader: multiqr.NewQRCodeMultiReader()} }},
	{dto.SymbologyDataMatrix, func() scanner { return single(datamatrix.NewDataMatrixReader()) }},
	{dto.SymbologyAztec, func() scanner { return single(aztec.NewAztecReader()) }},
	{dto.SymbologyCode128, func() scanner { return single(oned.NewCode128Reader()) }},
	{dto.SymbologyCode39, func() scanner { return single(oned.NewCode39Reader()) }},
	{dto.SymbologyCode93, func() scanner { return single(oned.NewCode93Reader()) }},
	{dto.SymbologyEAN13, func() scanner { return single(oned.NewEAN13Reader()) }},
	{dto.SymbologyEAN8, func() scanner { return single(oned.NewEAN8Reader()) }},
	{dto.SymbologyUPCA, func() scanner { return single(oned.NewUPCAReader()) }},
	{dto.SymbologyUPCE, func() scanner { return single(oned.NewUPCEReader()) }},
	{dto.SymbologyI25, func() scanner { return single(oned.NewITFReader()) }},
	{dto.SymbologyCodabar, func() scanner { return single(oned.NewCodaBarReader()) }},
}

var formatSymbology = map[gozxing.BarcodeFormat]dto.Symbology{
	gozxing.BarcodeFormat_QR_CODE:     dto.SymbologyQRCode,
	gozxing.BarcodeFormat_DATA_MATRIX: dto.SymbologyDataMatrix,
	gozxing.BarcodeFormat_AZTEC:       dto.SymbologyAztec,
	gozxing.BarcodeFormat_CODE_128:    dto.SymbologyCode128,
	gozxing.BarcodeFormat_CODE_39:     dto.SymbologyCode39,
	gozxing.BarcodeFormat_CODE_93:     dto.SymbologyCode93,
	gozxing.BarcodeFormat_EAN_13:      dto.SymbologyEAN13,
	gozxing.BarcodeFormat_EAN_8:       dto.SymbologyEAN8,
	gozxing.BarcodeFormat_UPC_A:       dto.SymbologyUPCA,
	gozxing.BarcodeFormat_UPC_E:       dto.SymbologyUPCE,
	gozxing.BarcodeFormat_ITF:         dto.SymbologyI25,
	gozxing.BarcodeFormat_CODABAR:     dto.SymbologyCodabar,
}

// SupportedSymbologies lists every symbology the ZXing backend can read.
func SupportedSymbologies() []dto.Symbology {
	return lo.Map(readerSpecs, func(s readerSpec, _ int) dto.Symbology { return s.symbology })
}

// ZXingBackend decodes frames with the gozxing readers, one pass per
// enabled symbology. QR codes are all reported; the other symbologies
// report the first code found.
type ZXingBackend struct {
	scanners []scanner
}

// NewZXingBackend enables the named symbologies, or all of them when
// names is empty.
func NewZXingBackend(names []string) (*ZXingBackend, error) {
	specs := readerSpecs
	if len(names) > 0 {
		specs = nil
		for _, name := range names {
			spec, ok := lo.Find(readerSpecs, func(s readerSpec) bool { return string(s.symbology) == name })
			if !ok {
				return nil, fmt.Errorf("unsupported symbology: %s", name)
			}
			specs = append(specs, spec)
		}
		specs = lo.UniqBy(specs, func(s readerSpec) dto.Symbology { return s.symbology })
	}

	b := &ZXingBackend{}
	for _, spec := range specs {
		b.scanners = append(b.scanners, spec.create())
	}
	return b, nil
}

func (b *ZXingBackend) Decode(img image.Image) ([]dto.RawDetection, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to binarize frame: %w", err)
	}

	type key struct {
		text      string
		symbology dto.Symbology
	}
	found := make(map[key]bool)

	var detections []dto.RawDetection
	for _, s := range b.scanners {
		results, err := s.scan(bmp)
		if err != nil {
			var notHere gozxing.ReaderException
			if errors.As(err, &notHere) {
				continue
			}
			return nil, err
		}

		for _, result := range results {
			if result == nil {
				continue
			}
			symbology, ok := formatSymbology[result.GetBarcodeFormat()]
			if !ok {
				symbology = dto.SymbologyUnknown
			}
			k := key{result.GetText(), symbology}
			if found[k] {
				continue
			}
			found[k] = true

			detections = append(detections, dto.RawDetection{
				Payload:   []byte(result.GetText()),
				Symbology: symbology,
				Box:       boundingBox(result.GetResultPoints(), img.Bounds()),
			})
		}
	}
	return detections, nil
}

// boundingBox is the hull of the result points, clipped to the frame.
func boundingBox(points []gozxing.ResultPoint, bounds image.Rectangle) dto.BoundingBox {
	if len(points) == 0 {
		return dto.BoundingBox{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if p == nil {
			continue
		}
		minX = math.Min(minX, p.GetX())
		minY = math.Min(minY, p.GetY())
		maxX = math.Max(maxX, p.GetX())
		maxY = math.Max(maxY, p.GetY())
	}
	if math.IsInf(minX, 1) {
		return dto.BoundingBox{}
	}

	r := image.Rect(int(minX), int(minY), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	if r.Dy() < minLinearHeight {
		mid := (r.Min.Y + r.Max.Y) / 2
		r.Min.Y = mid - minLinearHeight/2
		r.Max.Y = mid + minLinearHeight/2
	}
	r = r.Intersect(bounds)

	return dto.BoundingBox{
		X:      r.Min.X - bounds.Min.X,
		Y:      r.Min.Y - bounds.Min.Y,
		Width:  r.Dx(),
		Height: r.Dy(),
	}
}
