package runtime

// ============================================================================
// Number/int/uint method surface
// ============================================================================
//
// The three numeric classes share one set of native methods; int and uint
// also share the Number prototype. Precision and radix arguments validate
// before any formatting happens.

func recvNumber(recv Any) (float64, error) {
	return ToNumber(recv)
}

func argAt(args []Any, i int) Any {
	if i < len(args) {
		return args[i]
	}
	return Undefined()
}

func numberToFixed(recv Any, args []Any) (Any, error) {
	f, err := recvNumber(recv)
	if err != nil {
		return Any{}, err
	}
	p, err := ToInt32(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	if p < 0 || p > 20 {
		return Any{}, NewRangeErrorCode(ErrInvalidPrecision, p)
	}
	return StringAny(FormatFixed(f, int(p))), nil
}

func numberToExponential(recv Any, args []Any) (Any, error) {
	f, err := recvNumber(recv)
	if err != nil {
		return Any{}, err
	}
	p, err := ToInt32(argAt(args, 0))
	if err != nil {
		return Any{}, err
	}
	if p < 0 || p > 20 {
		return Any{}, NewRangeErrorCode(ErrInvalidPrecision, p)
	}
	return StringAny(FormatExponential(f, int(p))), nil
}

func numberToPrecision(recv Any, args []Any) (Any, error) {
	f, err := recvNumber(recv)
	if err != nil {
		return Any{}, err
	}
	if argAt(args, 0).IsUndefined() {
		return StringAny(FormatNumber(f)), nil
	}
	p, err := ToInt32(args[0])
	if err != nil {
		return Any{}, err
	}
	if p < 1 || p > 21 {
		return Any{}, NewRangeErrorCode(ErrInvalidPrecision, p)
	}
	return StringAny(FormatPrecision(f, int(p))), nil
}

func numberToString(recv Any, args []Any) (Any, error) {
	f, err := recvNumber(recv)
	if err != nil {
		return Any{}, err
	}
	radix := int32(10)
	if !argAt(args, 0).IsUndefined() {
		radix, err = ToInt32(args[0])
		if err != nil {
			return Any{}, err
		}
	}
	if radix < 2 || radix > 36 {
		return Any{}, NewRangeErrorCode(ErrInvalidRadix, radix)
	}
	return StringAny(FormatNumberRadix(f, int(radix))), nil
}

func numberValueOf(recv Any, args []Any) (Any, error) {
	if o := recv.Object(); o != nil {
		return recv, nil
	}
	return NumberAny(0), nil
}

// installNumberMethods registers the shared numeric surface on a class.
// toLocaleString is toString: this runtime carries no locale database for
// numbers.
func installNumberMethods(c *ClassInfo) {
	c.AddMethod("toFixed", numberToFixed)
	c.AddMethod("toExponential", numberToExponential)
	c.AddMethod("toPrecision", numberToPrecision)
	c.AddMethod("toString", numberToString)
	c.AddMethod("toLocaleString", numberToString)
	c.AddMethod("valueOf", numberValueOf)
}
