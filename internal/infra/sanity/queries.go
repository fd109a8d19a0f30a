package sanity

// 注文一覧。customer は参照を展開して埋め込む
const OrderQuery = `*[_type == "order"] {
  _id,
  _createdAt,
  _updatedAt,
  status,
  totalPrice,
  userId,
  cartItems[] {
    _id,
    title,
    price,
    image
  },
  customer-> {
    _id,
    firstName,
    lastName,
    email,
    phone,
    streetAddress
  }
}`

// レンタル注文一覧。customerId と画像アセットを展開する
const RentalOrderQuery = `*[_type == "rentalOrder"] {
  _id,
  rentalStartDate,
  rentalEndDate,
  productImage {
    _type,
    asset-> {
      _id,
      url
    }
  },
  quantity,
  totalPrice,
  rentalPricePerDay,
  totalDays,
  customerId-> {
    _id,
    _type,
    fullName,
    email,
    phone,
    address,
    city,
    state,
    country,
    zipCode,
    _createdAt
  },
  product,
  status,
  _createdAt,
  _updatedAt
}`
