package measurement

const diameterPrompt = `This photo shows a cross-section (slice) of a cut tree trunk with a ruler or tape measure placed across it.

Using the ruler as the scale reference, estimate the diameter of the slice in centimeters,
measured across the widest part of the cut face, bark included.

Respond with a single number in centimeters and nothing else, for example: 34.5`
