package dicelang

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"sync"
)

//Roller is the source of randomness for dice. Roll returns an integer drawn
//uniformly from [1, max].
type Roller interface {
	Roll(max int64) (int64, error)
}

//CryptoRoller draws from crypto/rand. It is the default Roller and is safe
//for concurrent use.
type CryptoRoller struct{}

//Roll implements Roller.
func (CryptoRoller) Roll(max int64) (int64, error) {
	return generateRandomInt(1, max)
}

func generateRandomInt(min int64, max int64) (int64, error) {
	if max <= 0 || min < 0 || max < min {
		return 0, fmt.Errorf("cannot make a random int between %d and %d", min, max)
	}
	size := max - min
	if size == 0 {
		return min, nil
	}
	//rand.Int does not return the max value, add 1
	nBig, err := rand.Int(rand.Reader, big.NewInt(size+1))
	if err != nil {
		return 0, fmt.Errorf("couldn't make a random number. Out of entropy? %v", err)
	}
	return nBig.Int64() + min, nil
}

//SeededRoller draws from a seeded math/rand source, so the same seed replays
//the same rolls. It is safe for concurrent use.
type SeededRoller struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

//NewSeededRoller creates a SeededRoller from seed.
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{rng: mathrand.New(mathrand.NewSource(seed))}
}

//Roll implements Roller.
func (s *SeededRoller) Roll(max int64) (int64, error) {
	if max < 1 {
		return 0, fmt.Errorf("cannot make a random int between 1 and %d", max)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63n(max) + 1, nil
}
