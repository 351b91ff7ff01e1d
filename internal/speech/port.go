package speech

import "github.com/Vovarama1992/kz_voice/internal/ports"

var _ ports.TTSProvider = (*NarakeetClient)(nil)
