package parser

import (
	"strconv"
	"strings"

	"github.com/georgestagg/ggsql/ast"
)

// ParseVizSuffix parses the VISUALISE suffix (the text returned as
// vizText by Split) into one VizSpec per top-level VISUALISE
// statement. A suffix that is only whitespace yields an empty slice.
func ParseVizSuffix(vizText string) ([]*ast.VizSpec, error) {
	p := &specParser{lex: NewLexer(vizText)}
	p.advance()

	var specs []*ast.VizSpec
	for p.cur.Kind != TokEOF {
		if !(p.cur.IsKeyword("VISUALISE") || p.cur.IsKeyword("VISUALIZE")) {
			return nil, ast.ParseError("Parse tree contains errors")
		}
		spec, err := p.parseSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// specParser holds the single-token lookahead recursive-descent
// parser's state. There is no backtracking: every production is
// resolved by its leading keyword.
type specParser struct {
	lex *Lexer
	cur Token
}

func (p *specParser) advance() {
	p.cur = p.lex.Next()
}

func (p *specParser) expectKeyword(kw string) error {
	if !p.cur.IsKeyword(kw) {
		return ast.ParseError("expected %s, got %q", kw, p.cur.Text)
	}
	p.advance()
	return nil
}

func (p *specParser) expectSymbol(sym string) error {
	if p.cur.Kind != TokSymbol || p.cur.Text != sym {
		return ast.ParseError("expected %q, got %q", sym, p.cur.Text)
	}
	p.advance()
	return nil
}

func (p *specParser) atKeyword(kw string) bool {
	return p.cur.IsKeyword(kw)
}

func (p *specParser) atAnyKeyword(kws ...string) bool {
	for _, kw := range kws {
		if p.cur.IsKeyword(kw) {
			return true
		}
	}
	return false
}

func (p *specParser) parseSpec() (*ast.VizSpec, error) {
	if err := p.expectKeyword2("VISUALISE", "VISUALIZE"); err != nil {
		return nil, err
	}

	spec := ast.NewVizSpec()

	if p.atKeyword("FROM") {
		p.advance()
		if err := p.skipFromTarget(); err != nil {
			return nil, err
		}
	}

	if p.atKeyword("AS") {
		p.advance()
		if p.cur.Kind != TokIdent {
			return nil, ast.ParseError("expected viz_type identifier after AS, got %q", p.cur.Text)
		}
		spec.VizType = p.cur.Text
		p.advance()
	}

	sawLayer := false
	for p.atKeyword("WITH") {
		layer, err := p.parseLayer()
		if err != nil {
			return nil, err
		}
		spec.Layers = append(spec.Layers, layer)
		sawLayer = true
	}
	if !sawLayer {
		return nil, ast.ParseError("expected at least one WITH <geom> USING clause")
	}

	for {
		switch {
		case p.atKeyword("MAPPING"):
			p.advance()
			mappings, err := p.parseMappingList()
			if err != nil {
				return nil, err
			}
			for _, k := range mappings.Keys() {
				v, _ := mappings.Get(k)
				spec.GlobalMappings.Set(k, v)
			}
		case p.atKeyword("SCALE"):
			sc, err := p.parseScale()
			if err != nil {
				return nil, err
			}
			spec.Scales[sc.Aesthetic] = sc
		case p.atKeyword("GUIDE"):
			g, err := p.parseGuide()
			if err != nil {
				return nil, err
			}
			spec.Guides[g.Aesthetic] = g
		case p.atKeyword("LABEL"):
			p.advance()
			if err := p.parseLabels(&spec.Labels); err != nil {
				return nil, err
			}
		case p.atKeyword("FACET"):
			p.advance()
			fs, err := p.parseFacet()
			if err != nil {
				return nil, err
			}
			spec.Facets = fs
		default:
			return spec, nil
		}
	}
}

func (p *specParser) expectKeyword2(a, b string) error {
	if !(p.cur.IsKeyword(a) || p.cur.IsKeyword(b)) {
		return ast.ParseError("expected %s, got %q", a, p.cur.Text)
	}
	p.advance()
	return nil
}

// skipFromTarget consumes an identifier or string literal FROM
// target without interpreting it; the splitter already turned any
// FROM-sugar into the injected SQL, so the AST never needs to hold
// this top-level source separately.
func (p *specParser) skipFromTarget() error {
	switch p.cur.Kind {
	case TokIdent, TokString:
		p.advance()
		return nil
	default:
		return ast.ParseError("expected identifier or string after FROM, got %q", p.cur.Text)
	}
}

// parseLayer parses one "WITH <geom> [FROM <ident|string>] USING
// <mapping>, …" clause.
func (p *specParser) parseLayer() (*ast.Layer, error) {
	if err := p.expectKeyword("WITH"); err != nil {
		return nil, err
	}
	if p.cur.Kind != TokIdent {
		return nil, ast.ParseError("expected geom name after WITH, got %q", p.cur.Text)
	}
	geom, ok := ast.GeomByName(p.cur.Text)
	if !ok {
		return nil, ast.ParseError("unknown geom %q", p.cur.Text)
	}
	p.advance()

	layer := ast.NewLayer(geom)

	if p.atKeyword("FROM") {
		p.advance()
		src, err := p.parseLayerSource()
		if err != nil {
			return nil, err
		}
		layer.Source = src
	}

	if err := p.expectKeyword("USING"); err != nil {
		return nil, err
	}
	mappings, err := p.parseMappingList()
	if err != nil {
		return nil, err
	}
	layer.Mappings = mappings

	return layer, nil
}

func (p *specParser) parseLayerSource() (*ast.LayerSource, error) {
	switch p.cur.Kind {
	case TokIdent:
		src := &ast.LayerSource{Kind: ast.SourceIdentifier, Value: p.cur.Text}
		p.advance()
		return src, nil
	case TokString:
		src := &ast.LayerSource{Kind: ast.SourceFilePath, Value: p.cur.Raw}
		p.advance()
		return src, nil
	default:
		return nil, ast.ParseError("expected identifier or string after FROM, got %q", p.cur.Text)
	}
}

// parseMappingList parses a comma-separated list of "<aesthetic> =
// <column | literal | *>" entries, preserving parse order.
func (p *specParser) parseMappingList() (*ast.OrderedMap[ast.MappingExpr], error) {
	out := ast.NewOrderedMap[ast.MappingExpr]()
	for {
		if p.cur.Kind != TokIdent {
			return nil, ast.ParseError("expected aesthetic name, got %q", p.cur.Text)
		}
		aesthetic := strings.ToLower(p.cur.Text)
		p.advance()
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		expr, err := p.parseMappingExpr()
		if err != nil {
			return nil, err
		}
		out.Set(aesthetic, expr)

		if p.cur.Kind == TokSymbol && p.cur.Text == "," {
			p.advance()
			continue
		}
		return out, nil
	}
}

func (p *specParser) parseMappingExpr() (ast.MappingExpr, error) {
	switch {
	case p.cur.Kind == TokSymbol && p.cur.Text == "*":
		p.advance()
		return ast.WildcardExpr(), nil
	case p.cur.Kind == TokString:
		v := p.cur.Text
		p.advance()
		return ast.LiteralExpr(ast.Str(v)), nil
	case p.cur.Kind == TokNumber:
		f, err := strconv.ParseFloat(p.cur.Text, 64)
		if err != nil {
			return ast.MappingExpr{}, ast.ParseError("invalid number %q", p.cur.Text)
		}
		p.advance()
		return ast.LiteralExpr(ast.Number(f)), nil
	case p.cur.Kind == TokIdent:
		name := p.cur.Text
		p.advance()
		return ast.ColumnRef(name), nil
	default:
		return ast.MappingExpr{}, ast.ParseError("expected mapping value, got %q", p.cur.Text)
	}
}

// parseScale parses "SCALE [<scale_type>] <aesthetic> [FROM <array>]
// [TO <array|palette>] [VIA <ident>] [SETTING <kv>, …]".
func (p *specParser) parseScale() (*ast.Scale, error) {
	if err := p.expectKeyword("SCALE"); err != nil {
		return nil, err
	}

	var scaleType *ast.ScaleTypeTag
	if p.cur.Kind == TokIdent {
		if tag, ok := ast.ScaleTypeTagByName(strings.ToLower(p.cur.Text)); ok {
			t := tag
			scaleType = &t
			p.advance()
		}
	}

	if p.cur.Kind != TokIdent {
		return nil, ast.ParseError("expected aesthetic name in SCALE clause, got %q", p.cur.Text)
	}
	sc := ast.NewScale(strings.ToLower(p.cur.Text))
	sc.ScaleType = scaleType
	p.advance()

	if p.atKeyword("FROM") {
		p.advance()
		arr, err := p.parseArray()
		if err != nil {
			return nil, err
		}
		sc.InputRange = arr
	}

	if p.atKeyword("TO") {
		p.advance()
		out, err := p.parseOutputRange()
		if err != nil {
			return nil, err
		}
		sc.OutputRange = out
	}

	if p.atKeyword("VIA") {
		p.advance()
		if p.cur.Kind != TokIdent {
			return nil, ast.ParseError("expected transform name after VIA, got %q", p.cur.Text)
		}
		m := p.cur.Text
		sc.TransformMethod = &m
		p.advance()
	}

	if p.atKeyword("SETTING") {
		p.advance()
		props, err := p.parseSettingList()
		if err != nil {
			return nil, err
		}
		for k, v := range props {
			sc.Properties[k] = v
		}
	}

	return sc, nil
}

// parseGuide parses "GUIDE <aesthetic> [<guide_type>] [SETTING <kv>,
// …]".
func (p *specParser) parseGuide() (*ast.Guide, error) {
	if err := p.expectKeyword("GUIDE"); err != nil {
		return nil, err
	}
	if p.cur.Kind != TokIdent {
		return nil, ast.ParseError("expected aesthetic name in GUIDE clause, got %q", p.cur.Text)
	}
	g := ast.NewGuide(strings.ToLower(p.cur.Text))
	p.advance()

	if p.cur.Kind == TokIdent {
		if tag, ok := ast.GuideTypeTagByName(strings.ToLower(p.cur.Text)); ok {
			t := tag
			g.GuideType = &t
			p.advance()
		}
	}

	if p.atKeyword("SETTING") {
		p.advance()
		props, err := p.parseSettingList()
		if err != nil {
			return nil, err
		}
		for k, v := range props {
			g.Properties[k] = v
		}
	}

	return g, nil
}

// parseLabels parses "<key> = <value>, …" into dest, routing
// title/subtitle/caption to their dedicated fields and anything else
// to a per-aesthetic axis label.
func (p *specParser) parseLabels(dest *ast.Labels) error {
	if dest.Axis == nil {
		dest.Axis = make(map[string]string)
	}
	for {
		if p.cur.Kind != TokIdent {
			return ast.ParseError("expected label key, got %q", p.cur.Text)
		}
		key := strings.ToLower(p.cur.Text)
		p.advance()
		if err := p.expectSymbol("="); err != nil {
			return err
		}
		if p.cur.Kind != TokString {
			return ast.ParseError("expected string value for label %q, got %q", key, p.cur.Text)
		}
		value := p.cur.Text
		p.advance()

		switch key {
		case "title":
			dest.Title = value
		case "subtitle":
			dest.Subtitle = value
		case "caption":
			dest.Caption = value
		default:
			dest.Axis[key] = value
		}

		if p.cur.Kind == TokSymbol && p.cur.Text == "," {
			p.advance()
			continue
		}
		return nil
	}
}

// parseFacet parses "WRAP|GRID <rows> [BY <cols>]" (rows/cols are
// bare identifiers naming a column).
func (p *specParser) parseFacet() (*ast.FacetSpec, error) {
	fs := &ast.FacetSpec{}
	switch {
	case p.atKeyword("WRAP"):
		fs.Kind = ast.FacetWrap
		p.advance()
	case p.atKeyword("GRID"):
		fs.Kind = ast.FacetGrid
		p.advance()
	default:
		return nil, ast.ParseError("expected WRAP or GRID after FACET, got %q", p.cur.Text)
	}
	if p.cur.Kind != TokIdent {
		return nil, ast.ParseError("expected column name after FACET clause, got %q", p.cur.Text)
	}
	fs.Rows = p.cur.Text
	p.advance()
	if p.atKeyword("BY") {
		p.advance()
		if p.cur.Kind != TokIdent {
			return nil, ast.ParseError("expected column name after BY, got %q", p.cur.Text)
		}
		fs.Cols = p.cur.Text
		p.advance()
	}
	return fs, nil
}

// parseArray parses "[ elem, elem, … ]" into an ArrayElement slice. A
// bare "NULL" identifier is the null sentinel.
func (p *specParser) parseArray() ([]ast.ArrayElement, error) {
	if err := p.expectSymbol("["); err != nil {
		return nil, err
	}
	var out []ast.ArrayElement
	if p.cur.Kind == TokSymbol && p.cur.Text == "]" {
		p.advance()
		return out, nil
	}
	for {
		el, err := p.parseArrayElement()
		if err != nil {
			return nil, err
		}
		out = append(out, el)
		if p.cur.Kind == TokSymbol && p.cur.Text == "," {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *specParser) parseArrayElement() (ast.ArrayElement, error) {
	switch {
	case p.cur.Kind == TokString:
		v := p.cur.Text
		p.advance()
		return ast.Str(v), nil
	case p.cur.Kind == TokNumber:
		f, err := strconv.ParseFloat(p.cur.Text, 64)
		if err != nil {
			return ast.ArrayElement{}, ast.ParseError("invalid number %q", p.cur.Text)
		}
		p.advance()
		return ast.Number(f), nil
	case p.cur.IsKeyword("NULL"):
		p.advance()
		return ast.Null(), nil
	case p.cur.IsKeyword("TRUE"):
		p.advance()
		return ast.BoolElement(true), nil
	case p.cur.IsKeyword("FALSE"):
		p.advance()
		return ast.BoolElement(false), nil
	case p.cur.Kind == TokIdent:
		v := p.cur.Text
		p.advance()
		return ast.Str(v), nil
	default:
		return ast.ArrayElement{}, ast.ParseError("expected array element, got %q", p.cur.Text)
	}
}

// parseOutputRange parses a scale's TO clause: either a bracketed
// array or a bare palette name.
func (p *specParser) parseOutputRange() (*ast.OutputRange, error) {
	if p.cur.Kind == TokSymbol && p.cur.Text == "[" {
		arr, err := p.parseArray()
		if err != nil {
			return nil, err
		}
		return &ast.OutputRange{Kind: ast.OutputArray, Array: arr}, nil
	}
	if p.cur.Kind != TokIdent {
		return nil, ast.ParseError("expected palette name or array in TO clause, got %q", p.cur.Text)
	}
	name := p.cur.Text
	p.advance()
	return &ast.OutputRange{Kind: ast.OutputPalette, Palette: name}, nil
}

// parseSettingList parses "<key> : <value>, …" or "<key> = <value>,
// …" into a flat property bag.
func (p *specParser) parseSettingList() (map[string]ast.ArrayElement, error) {
	out := make(map[string]ast.ArrayElement)
	for {
		if p.cur.Kind != TokIdent {
			return nil, ast.ParseError("expected setting key, got %q", p.cur.Text)
		}
		key := strings.ToLower(p.cur.Text)
		p.advance()
		if p.cur.Kind == TokSymbol && (p.cur.Text == ":" || p.cur.Text == "=") {
			p.advance()
		} else {
			return nil, ast.ParseError("expected ':' or '=' after setting key %q, got %q", key, p.cur.Text)
		}
		val, err := p.parseArrayElement()
		if err != nil {
			return nil, err
		}
		out[key] = val

		if p.cur.Kind == TokSymbol && p.cur.Text == "," {
			p.advance()
			continue
		}
		return out, nil
	}
}
