package avif

// CICP code sets (ITU-T H.273) carried by the colr property. The codes are
// consumed as opaque numbers by the writer; only the defaults matter to it.

// ColorPrimaries is the CICP colour primaries code.
type ColorPrimaries uint16

const (
	ColorPrimariesBT709       ColorPrimaries = 1
	ColorPrimariesUnspecified ColorPrimaries = 2
	ColorPrimariesBT470M      ColorPrimaries = 4
	ColorPrimariesBT470BG     ColorPrimaries = 5
	ColorPrimariesBT601       ColorPrimaries = 6
	ColorPrimariesSMPTE240    ColorPrimaries = 7
	ColorPrimariesGenericFilm ColorPrimaries = 8
	ColorPrimariesBT2020      ColorPrimaries = 9
	ColorPrimariesXYZ         ColorPrimaries = 10
	ColorPrimariesSMPTE431    ColorPrimaries = 11
	ColorPrimariesSMPTE432    ColorPrimaries = 12
	ColorPrimariesEBU3213     ColorPrimaries = 22
)

// TransferCharacteristics is the CICP transfer characteristics code.
type TransferCharacteristics uint16

const (
	TransferBT709        TransferCharacteristics = 1
	TransferUnspecified  TransferCharacteristics = 2
	TransferBT470M       TransferCharacteristics = 4
	TransferBT470BG      TransferCharacteristics = 5
	TransferBT601        TransferCharacteristics = 6
	TransferSMPTE240     TransferCharacteristics = 7
	TransferLinear       TransferCharacteristics = 8
	TransferLog100       TransferCharacteristics = 9
	TransferLog100Sqrt10 TransferCharacteristics = 10
	TransferIEC61966     TransferCharacteristics = 11
	TransferBT1361       TransferCharacteristics = 12
	TransferSRGB         TransferCharacteristics = 13
	TransferBT2020Ten    TransferCharacteristics = 14
	TransferBT2020Twelve TransferCharacteristics = 15
	TransferSMPTE2084    TransferCharacteristics = 16
	TransferSMPTE428     TransferCharacteristics = 17
	TransferHLG          TransferCharacteristics = 18
)

// MatrixCoefficients is the CICP matrix coefficients code.
type MatrixCoefficients uint16

const (
	MatrixIdentity    MatrixCoefficients = 0
	MatrixBT709       MatrixCoefficients = 1
	MatrixUnspecified MatrixCoefficients = 2
	MatrixFCC         MatrixCoefficients = 4
	MatrixBT470BG     MatrixCoefficients = 5
	MatrixBT601       MatrixCoefficients = 6
	MatrixSMPTE240    MatrixCoefficients = 7
	MatrixYCgCo       MatrixCoefficients = 8
	MatrixBT2020NCL   MatrixCoefficients = 9
	MatrixBT2020CL    MatrixCoefficients = 10
	MatrixSMPTE2085   MatrixCoefficients = 11
)
